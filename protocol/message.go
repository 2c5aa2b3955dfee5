package protocol

import (
	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/wire"
)

// Message is the sum type of frames the device may emit. Decode never
// fails on an unrecognized type_id; it falls back to Unknown so callers
// can log and move on rather than dropping the connection.
type Message interface {
	isMessage()
}

// Unknown is the catch-all variant for any (type_id, source) pair this
// package does not model explicitly.
type Unknown struct {
	TypeID  byte
	Source  addr.BusAddr
	Payload []byte
}

func (Unknown) isMessage() {}

// Decode dispatches a parsed wire frame to its typed Message variant. The
// payload shape for a handful of type IDs (notably 0xAA STATUS) depends on
// the frame's source bus address as well as its type_id.
func Decode(f wire.RawFrame) (Message, error) {
	switch f.TypeID {
	case TypeStatus:
		return decodeStatus(f)
	case TypeConfigAck:
		return decodeAck(f, true)
	case TypeConfigNack:
		return decodeAck(f, false)
	case TypeModeAck:
		return decodeModeAck(f)
	case TypeModeSet:
		return decodeModeSet(f)
	case TypeParamValue:
		return decodeParamValue(f)
	case TypeRadarCal:
		return decodeRadarCalAck(f)
	case TypeConfigResp:
		return decodeConfigResp(f)
	case TypeAvrConfigResp:
		return decodeAvrConfigResp(f)
	case TypeDspQueryResp:
		return decodeDspQueryResp(f)
	case TypeDevInfoResp:
		return decodeDevInfoResp(f)
	case TypeProdInfoResp:
		return decodeProdInfoResp(f)
	case TypeNetConfigResp:
		return decodeNetConfigResp(f)
	case TypeCalParamResp:
		return decodeCalParamResp(f)
	case TypeCalDataResp:
		return decodeCalDataResp(f)
	case TypeTimeSync:
		return decodeTimeSyncAck(f)
	case TypeCamState:
		return decodeCamStateAck(f)
	case TypeCamConfig:
		return decodeCamConfigAck(f)
	case TypeCamImageAvail:
		return decodeCamImageAvail(f)
	case TypeSensorActResp:
		return SensorActResp{Payload: append([]byte(nil), f.Payload...)}, nil
	case TypeFlightResult:
		return decodeFlightResult(f)
	case TypeFlightResultV1:
		return decodeFlightResultV1(f)
	case TypeClubResult:
		return decodeClubResult(f)
	case TypeSpinResult:
		return decodeSpinResult(f)
	case TypeSpeedProfile:
		return decodeSpeedProfile(f)
	case TypeTrackingStatus:
		return decodeTrackingStatus(f)
	case TypePrcData:
		return decodePrcData(f)
	case TypeClubPrc:
		return decodeClubPrc(f)
	case TypeShotText:
		return decodeShotText(f)
	case TypeDebugText:
		return decodeText(f)
	case TypeDspDebugText:
		return decodeDspDebugText(f)
	default:
		return Unknown{TypeID: f.TypeID, Source: f.Src, Payload: f.Payload}, nil
	}
}
