package protocol

import "github.com/divotmaker/ironsight/wire"

// Detection mode constants (commsIndex values for command 0xA5).
const (
	ModeIndoor           = 1
	ModeLongIndoor       = 2
	ModePutting          = 3
	ModeClubSwing        = 4
	ModeChipping         = 5
	ModeSimPutting       = 6
	ModeOutdoor          = 9
	ModeRawSampling      = 13
	ModePuttingDedicated = 14
	ModeChipIn           = 15
	ModeChipOut          = 16
)

// ModeSetMsg is the device's echo of a mode-set command (3 bytes), type
// 0xA5.
type ModeSetMsg struct {
	Mode byte
}

func (ModeSetMsg) isMessage() {}

func decodeModeSet(f wire.RawFrame) (ModeSetMsg, error) {
	if err := checkLen(f.Payload, 0, 3, "ModeSet"); err != nil {
		return ModeSetMsg{}, err
	}
	return ModeSetMsg{Mode: f.Payload[2]}, nil
}

// ParamValueMsg is a dual-use parameter value: a read response or a write
// echo, type 0xBF.
type ParamValueMsg struct {
	ParamID byte
	Value   ParamData
}

func (ParamValueMsg) isMessage() {}

func decodeParamValue(f wire.RawFrame) (ParamValueMsg, error) {
	p := f.Payload
	if len(p) == 0 {
		return ParamValueMsg{}, wire.PayloadTooShort("ParamValue", 1, 0)
	}
	switch p[0] {
	case 0x06:
		if err := checkLen(p, 0, 7, "ParamValue(INT24)"); err != nil {
			return ParamValueMsg{}, err
		}
		v, err := wire.ReadInt24(p, 4)
		if err != nil {
			return ParamValueMsg{}, err
		}
		return ParamValueMsg{ParamID: p[3], Value: IntParam(v)}, nil
	case 0x08:
		if err := checkLen(p, 0, 9, "ParamValue(FLOAT40)"); err != nil {
			return ParamValueMsg{}, err
		}
		v, err := wire.ReadFloat40(p, 4)
		if err != nil {
			return ParamValueMsg{}, err
		}
		return ParamValueMsg{ParamID: p[3], Value: FloatParam(v)}, nil
	default:
		return ParamValueMsg{}, wire.UnexpectedLength("ParamValue", 6, int(p[0]))
	}
}

// RadarCalAck echoes a radar calibration command (7 bytes), type 0xA4.
type RadarCalAck struct {
	RangeMM  uint16
	HeightMM byte
}

func (RadarCalAck) isMessage() {}

func decodeRadarCalAck(f wire.RawFrame) (RadarCalAck, error) {
	p := f.Payload
	if err := checkLen(p, 0, 7, "RadarCal"); err != nil {
		return RadarCalAck{}, err
	}
	rng, err := wire.ReadUint16(p, 1)
	if err != nil {
		return RadarCalAck{}, err
	}
	return RadarCalAck{RangeMM: rng, HeightMM: p[4]}, nil
}

// ConfigResp is the radar's TParameters config response (69 bytes): a
// one-byte size field followed by 34 INT16 parameters. Type 0xA0.
type ConfigResp struct {
	Params [34]int16
}

func (ConfigResp) isMessage() {}

func decodeConfigResp(f wire.RawFrame) (ConfigResp, error) {
	p := f.Payload
	if err := checkLen(p, 0, 69, "ConfigResp"); err != nil {
		return ConfigResp{}, err
	}
	var out ConfigResp
	for i := range out.Params {
		v, err := wire.ReadInt16(p, 1+i*2)
		if err != nil {
			return ConfigResp{}, err
		}
		out.Params[i] = v
	}
	return out, nil
}

// AvrConfigResp is the AVR config response (17 bytes), type 0xA2. The raw
// payload is kept; Version reports the wire format (1 = Mevo+, 2 = Gen2).
type AvrConfigResp struct {
	Payload []byte
}

func (AvrConfigResp) isMessage() {}

func (r AvrConfigResp) Version() byte {
	if len(r.Payload) < 2 {
		return 0
	}
	return r.Payload[1]
}

func decodeAvrConfigResp(f wire.RawFrame) (AvrConfigResp, error) {
	return AvrConfigResp{Payload: append([]byte(nil), f.Payload...)}, nil
}
