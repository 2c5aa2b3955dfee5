package protocol

import (
	"fmt"
	"strings"

	"github.com/divotmaker/ironsight/wire"
)

// decodeCString decodes a null-terminated ASCII string from a fixed-width
// slot, stopping at the first NUL (or the slot boundary if none is found).
func decodeCString(slot []byte) string {
	end := len(slot)
	for i, b := range slot {
		if b == 0 {
			end = i
			break
		}
	}
	return string(slot[:end])
}

// DeviceGen identifies the device's hardware generation, detected from the
// DspQueryResp dspType byte.
type DeviceGen struct {
	label   string
	unknown bool
	raw     byte
}

var (
	DeviceGenMevoPlus = DeviceGen{label: "Mevo+"}
	DeviceGenGen2     = DeviceGen{label: "Mevo Gen2"}
)

// DeviceGenFromDspType classifies a dspType byte into a DeviceGen.
func DeviceGenFromDspType(dspType byte) DeviceGen {
	switch dspType {
	case 0x80:
		return DeviceGenMevoPlus
	case 0xC0:
		return DeviceGenGen2
	default:
		return DeviceGen{label: "Unknown", unknown: true, raw: dspType}
	}
}

func (g DeviceGen) String() string {
	if g.unknown {
		return fmt.Sprintf("Unknown (0x%02X)", g.raw)
	}
	return g.label
}

// DspQueryResp is the DSP hardware query response (3 bytes), type 0xC8.
type DspQueryResp struct {
	Version byte
	DspType byte
	Pcb     byte
}

func (DspQueryResp) isMessage() {}

// Gen reports the device generation implied by DspType.
func (r DspQueryResp) Gen() DeviceGen { return DeviceGenFromDspType(r.DspType) }

func decodeDspQueryResp(f wire.RawFrame) (DspQueryResp, error) {
	p := f.Payload
	if err := checkLen(p, 0, 3, "DspQueryResp"); err != nil {
		return DspQueryResp{}, err
	}
	return DspQueryResp{Version: p[0], DspType: p[1], Pcb: p[2]}, nil
}

// DevInfoResp is the device info response (75-76 bytes), type 0xE7. Text is
// the concatenation of the non-empty text slots, space-separated.
type DevInfoResp struct {
	Text string
}

func (DevInfoResp) isMessage() {}

func decodeDevInfoResp(f wire.RawFrame) (DevInfoResp, error) {
	p := f.Payload
	slotStart := 27
	if len(p) >= 76 {
		slotStart = 28
	}
	var parts []string
	for i := 0; i < 3; i++ {
		offset := slotStart + i*16
		if offset+16 <= len(p) {
			s := decodeCString(p[offset : offset+16])
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	return DevInfoResp{Text: strings.Join(parts, " ")}, nil
}

// ProdInfoResp is the product info response (34 bytes ASCII), type 0xFD
// (DSP to App). Contains Pi hardware ID and camera model.
type ProdInfoResp struct {
	Text string
}

func (ProdInfoResp) isMessage() {}

func decodeProdInfoResp(f wire.RawFrame) (ProdInfoResp, error) {
	return ProdInfoResp{Text: decodeCString(f.Payload)}, nil
}

// NetConfigResp is the network config response (54 bytes), type 0xDE (PI
// to App). Text holds the SSID and/or password slots, NUL-joined; callers
// distinguish them by which sub-query was sent.
type NetConfigResp struct {
	Text string
}

func (NetConfigResp) isMessage() {}

func decodeNetConfigResp(f wire.RawFrame) (NetConfigResp, error) {
	p := f.Payload
	var parts []string
	for _, offset := range []int{21, 37} {
		if offset+16 <= len(p) {
			s := decodeCString(p[offset : offset+16])
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	return NetConfigResp{Text: strings.Join(parts, "\x00")}, nil
}

// CalParamResp is the IF calibration parameter response (242 bytes), type
// 0xD1. Field layout is not yet mapped; the raw payload is kept.
type CalParamResp struct {
	Payload []byte
}

func (CalParamResp) isMessage() {}

func decodeCalParamResp(f wire.RawFrame) (CalParamResp, error) {
	return CalParamResp{Payload: append([]byte(nil), f.Payload...)}, nil
}

// CalDataResp is the calibration data response, type 0xD3. Variable
// length, paginated for the post-shot sub-command; the raw payload is
// kept.
type CalDataResp struct {
	Payload []byte
}

func (CalDataResp) isMessage() {}

func decodeCalDataResp(f wire.RawFrame) (CalDataResp, error) {
	return CalDataResp{Payload: append([]byte(nil), f.Payload...)}, nil
}

// TimeSyncAck echoes a time-sync command (9 bytes), type 0x9B.
type TimeSyncAck struct {
	Epoch   uint32
	Session byte
	Tail    [2]byte
}

func (TimeSyncAck) isMessage() {}

func decodeTimeSyncAck(f wire.RawFrame) (TimeSyncAck, error) {
	p := f.Payload
	if err := checkLen(p, 0, 9, "TimeSync"); err != nil {
		return TimeSyncAck{}, err
	}
	epoch, err := wire.ReadUint32(p, 2)
	if err != nil {
		return TimeSyncAck{}, err
	}
	return TimeSyncAck{Epoch: epoch, Session: p[6], Tail: [2]byte{p[7], p[8]}}, nil
}
