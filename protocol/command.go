package protocol

import (
	"fmt"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/wire"
)

// Command is the sum type of messages the application may emit. Unit
// variants carry empty payloads; struct variants carry typed fields. Every
// Command produces a (type_id, payload) pair via Encode, wrapped into a
// RawFrame addressed to the caller-supplied destination with App as the
// source.
type Command interface {
	// Encode builds the wire frame for this command, addressed to dest.
	Encode(dest addr.BusAddr) wire.RawFrame
	// DebugHex renders the command's wire bytes as a hex string, for
	// trace logging.
	DebugHex(dest addr.BusAddr) string
}

func encodeWith(dest addr.BusAddr, typeID byte, payload []byte) wire.RawFrame {
	return wire.RawFrame{Dest: dest, Src: addr.App, TypeID: typeID, Payload: payload}
}

func debugHex(dest addr.BusAddr, typeID byte, payload []byte) string {
	f := encodeWith(dest, typeID, payload)
	w := f.Encode()
	s := ""
	for i, b := range w {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%02X", b)
	}
	return s
}

// StatusPoll polls for status (0xAA). PiMode selects the PI status
// variant of the poll.
type StatusPoll struct {
	PiMode bool
}

func (c StatusPoll) payload() []byte {
	if c.PiMode {
		return []byte{0x01, 0x03}
	}
	return []byte{0x01, 0x01}
}
func (c StatusPoll) Encode(dest addr.BusAddr) wire.RawFrame { return encodeWith(dest, TypeStatus, c.payload()) }
func (c StatusPoll) DebugHex(dest addr.BusAddr) string       { return debugHex(dest, TypeStatus, c.payload()) }

// unitCommand is embedded by zero-payload commands.
type unitCommand struct {
	typeID  byte
	payload []byte
}

func (c unitCommand) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, c.typeID, c.payload)
}
func (c unitCommand) DebugHex(dest addr.BusAddr) string { return debugHex(dest, c.typeID, c.payload) }

// DspQueryCmd queries DSP hardware info (0x48).
type DspQueryCmd struct{ unitCommand }

func NewDspQueryCmd() DspQueryCmd { return DspQueryCmd{unitCommand{TypeDspQuery, nil}} }

// ConfigQueryCmd queries radar configuration (0x21).
type ConfigQueryCmd struct{ unitCommand }

func NewConfigQueryCmd() ConfigQueryCmd { return ConfigQueryCmd{unitCommand{TypeConfigQuery, nil}} }

// AvrConfigQueryCmd queries AVR config (0xA1).
type AvrConfigQueryCmd struct{ unitCommand }

func NewAvrConfigQueryCmd() AvrConfigQueryCmd {
	return AvrConfigQueryCmd{unitCommand{TypeAvrConfigQuery, nil}}
}

// DevInfoReqCmd requests device info (0x67).
type DevInfoReqCmd struct{ unitCommand }

func NewDevInfoReqCmd() DevInfoReqCmd { return DevInfoReqCmd{unitCommand{TypeDevInfoReq, nil}} }

// CalParamReqCmd requests the IF calibration blob (0xD0). Always [02 00 08].
type CalParamReqCmd struct{ unitCommand }

func NewCalParamReqCmd() CalParamReqCmd {
	return CalParamReqCmd{unitCommand{TypeCalParamReq, []byte{0x02, 0x00, 0x08}}}
}

// CamConfigReqCmd requests camera config readback (0x86). Always [02 01 05].
type CamConfigReqCmd struct{ unitCommand }

func NewCamConfigReqCmd() CamConfigReqCmd {
	return CamConfigReqCmd{unitCommand{TypeCamConfigReq, []byte{0x02, 0x01, 0x05}}}
}

// ShotDataAckCmd acknowledges shot data (0x69). No payload.
type ShotDataAckCmd struct{ unitCommand }

func NewShotDataAckCmd() ShotDataAckCmd { return ShotDataAckCmd{unitCommand{TypeShotDataAck, nil}} }

// ShotResultReqCmd requests shot result re-delivery (0x6D). No payload.
type ShotResultReqCmd struct{ unitCommand }

func NewShotResultReqCmd() ShotResultReqCmd {
	return ShotResultReqCmd{unitCommand{TypeShotResultReq, nil}}
}

// ModeSetCmd sets the detection mode (0xA5). Payload: [02 00 mode].
type ModeSetCmd struct{ Mode byte }

func (c ModeSetCmd) payload() []byte { return []byte{0x02, 0x00, c.Mode} }
func (c ModeSetCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeModeSet, c.payload())
}
func (c ModeSetCmd) DebugHex(dest addr.BusAddr) string { return debugHex(dest, TypeModeSet, c.payload()) }

// AvrConfigCmd issues a config-commit ([01 00]) or arm trigger ([01 01])
// to the AVR (0xB0).
type AvrConfigCmd struct{ Arm bool }

func (c AvrConfigCmd) payload() []byte {
	if c.Arm {
		return []byte{0x01, 0x01}
	}
	return []byte{0x01, 0x00}
}
func (c AvrConfigCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeAvrConfigCmd, c.payload())
}
func (c AvrConfigCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeAvrConfigCmd, c.payload())
}

// ParamReadReqCmd reads an AVR/PI parameter by ID (0xBE). Payload: [03 00 00 id].
type ParamReadReqCmd struct{ ParamID byte }

func (c ParamReadReqCmd) payload() []byte { return []byte{0x03, 0x00, 0x00, c.ParamID} }
func (c ParamReadReqCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeParamReadReq, c.payload())
}
func (c ParamReadReqCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeParamReadReq, c.payload())
}

// ParamData is the value carried by a ParamValue command/message: either
// an INT24 or a FLOAT40, selected by a format byte on the wire.
type ParamData struct {
	IsFloat bool
	Int24   int32
	Float40 float64
}

// IntParam builds an INT24-valued ParamData.
func IntParam(v int32) ParamData { return ParamData{Int24: v} }

// FloatParam builds a FLOAT40-valued ParamData.
func FloatParam(v float64) ParamData { return ParamData{IsFloat: true, Float40: v} }

// ParamValueCmd writes (or, as a Message, reports) a parameter value
// (0xBF).
type ParamValueCmd struct {
	ParamID byte
	Value   ParamData
}

func (c ParamValueCmd) payload() []byte {
	var buf []byte
	if c.Value.IsFloat {
		buf = append(buf, 0x08, 0x00, 0x00, c.ParamID)
		buf = wire.WriteFloat40(buf, c.Value.Float40)
	} else {
		buf = append(buf, 0x06, 0x00, 0x00, c.ParamID)
		buf = wire.WriteInt24(buf, c.Value.Int24)
	}
	return buf
}
func (c ParamValueCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeParamValue, c.payload())
}
func (c ParamValueCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeParamValue, c.payload())
}

// RadarCalCmd sets radar calibration (0xA4). Payload: [06 range_hi range_lo 00 height 00 00].
type RadarCalCmd struct {
	RangeMM uint16
	HeightMM byte
}

func (c RadarCalCmd) payload() []byte {
	buf := []byte{0x06}
	buf = wire.WriteUint16(buf, c.RangeMM)
	buf = append(buf, 0x00, c.HeightMM, 0x00, 0x00)
	return buf
}
func (c RadarCalCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeRadarCal, c.payload())
}
func (c RadarCalCmd) DebugHex(dest addr.BusAddr) string { return debugHex(dest, TypeRadarCal, c.payload()) }

// ProdInfoReqCmd requests product info, sub-queries 0x00/0x08/0x09 (0xFD).
type ProdInfoReqCmd struct{ SubQuery byte }

func (c ProdInfoReqCmd) payload() []byte { return []byte{0x01, c.SubQuery} }
func (c ProdInfoReqCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeProdInfoReq, c.payload())
}
func (c ProdInfoReqCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeProdInfoReq, c.payload())
}

// NetConfigReqCmd requests SSID ([01 00]) or password ([01 08]) (0xDE).
type NetConfigReqCmd struct{ QueryPassword bool }

func (c NetConfigReqCmd) payload() []byte {
	if c.QueryPassword {
		return []byte{0x01, 0x08}
	}
	return []byte{0x01, 0x00}
}
func (c NetConfigReqCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeNetConfigReq, c.payload())
}
func (c NetConfigReqCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeNetConfigReq, c.payload())
}

// CalDataReq sub-commands (0xD2).
const (
	CalDataSubFactory  = 0x03
	CalDataSubPostShot = 0x07
)

// CalDataReqCmd requests calibration data (0xD2): factory info or a
// post-shot parameter dump, selected by SubCmd.
type CalDataReqCmd struct{ SubCmd byte }

func (c CalDataReqCmd) payload() []byte {
	return []byte{0x09, 0x00, 0x00, c.SubCmd, 0x00, 0x00, 0x00, 0x00, 0x00, subCmdTail(c.SubCmd)}
}
func subCmdTail(sub byte) byte {
	if sub == CalDataSubFactory {
		return 0xA5
	}
	return 0x00
}
func (c CalDataReqCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeCalDataReq, c.payload())
}
func (c CalDataReqCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeCalDataReq, c.payload())
}

// TimeSyncCmd synchronizes the device clock (0x9B). Payload: [08 00
// epoch(4B BE) session tail0 tail1].
type TimeSyncCmd struct {
	Epoch   uint32
	Session byte
	Tail    [2]byte
}

func (c TimeSyncCmd) payload() []byte {
	buf := []byte{0x08, 0x00}
	buf = wire.WriteUint32(buf, c.Epoch)
	buf = append(buf, c.Session, c.Tail[0], c.Tail[1])
	return buf
}
func (c TimeSyncCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeTimeSync, c.payload())
}
func (c TimeSyncCmd) DebugHex(dest addr.BusAddr) string { return debugHex(dest, TypeTimeSync, c.payload()) }

// CamStateCmd starts/stops the camera (0x81). Payload: [01 state].
type CamStateCmd struct{ State byte }

func (c CamStateCmd) payload() []byte { return []byte{0x01, c.State} }
func (c CamStateCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeCamState, c.payload())
}
func (c CamStateCmd) DebugHex(dest addr.BusAddr) string { return debugHex(dest, TypeCamState, c.payload()) }

// CamConfigCmd pushes a full camera configuration (0x82).
type CamConfigCmd struct{ Config CamConfig }

func (c CamConfigCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeCamConfig, c.Config.encode())
}
func (c CamConfigCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeCamConfig, c.Config.encode())
}

// SensorActCmd activates camera sensor functions (0x90); payload is an
// opaque blob the caller supplies, typically obtained from a prior
// handshake step.
type SensorActCmd struct{ Payload []byte }

func (c SensorActCmd) Encode(dest addr.BusAddr) wire.RawFrame {
	return encodeWith(dest, TypeSensorAct, c.Payload)
}
func (c SensorActCmd) DebugHex(dest addr.BusAddr) string {
	return debugHex(dest, TypeSensorAct, c.Payload)
}
