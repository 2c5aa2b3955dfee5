package protocol

import (
	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/wire"
)

// decodeStatus dispatches a 0xAA STATUS frame by source bus address: AVR,
// DSP, and PI each use a distinct payload shape.
func decodeStatus(f wire.RawFrame) (Message, error) {
	switch f.Src {
	case addr.Avr:
		return decodeAvrStatus(f.Payload)
	case addr.Dsp:
		return decodeDspStatus(f.Payload)
	case addr.Pi:
		return PiStatus{Payload: append([]byte(nil), f.Payload...)}, nil
	default:
		return Unknown{TypeID: f.TypeID, Source: f.Src, Payload: f.Payload}, nil
	}
}

// AvrStatus is the AVR's 25-byte status response.
type AvrStatus struct {
	Version     byte
	State       byte
	HwIDHi      byte
	HwIDLo      byte
	FullAppID   int32
	Temperature float64
	Tilt        float64
	Roll        float64
}

func (AvrStatus) isMessage() {}

func decodeAvrStatus(payload []byte) (AvrStatus, error) {
	if err := checkLen(payload, 0, 25, "AvrStatus"); err != nil {
		return AvrStatus{}, err
	}
	fullAppID, err := wire.ReadInt24(payload, 8)
	if err != nil {
		return AvrStatus{}, err
	}
	temp, err := wire.ReadFloat40(payload, 10)
	if err != nil {
		return AvrStatus{}, err
	}
	tilt, err := wire.ReadFloat40(payload, 15)
	if err != nil {
		return AvrStatus{}, err
	}
	roll, err := wire.ReadFloat40(payload, 20)
	if err != nil {
		return AvrStatus{}, err
	}
	return AvrStatus{
		Version:     payload[0],
		State:       payload[1],
		HwIDHi:      payload[2],
		HwIDLo:      payload[5],
		FullAppID:   fullAppID,
		Temperature: temp,
		Tilt:        tilt,
		Roll:        roll,
	}, nil
}

// DspStatus is the sum type of DSP status responses: Gen1 Mevo+ reports a
// fully decoded DspStatusV80, Gen2 Mevo reports a raw DspStatusV46 pending
// field mapping.
type DspStatus interface {
	Message
	StatusState() byte
	BatteryPercent() uint8
	ExternalPower() bool
	TemperatureC() float64
}

func decodeDspStatus(payload []byte) (DspStatus, error) {
	if err := checkLen(payload, 0, 2, "DspStatus"); err != nil {
		return nil, err
	}
	if payload[0] == 0x80 {
		return decodeDspStatusV80(payload)
	}
	return DspStatusV46{State: payload[1], Version: payload[0], Payload: append([]byte(nil), payload...)}, nil
}

// DspStatusV80 is the Gen1 Mevo+ DSP status (version 0x80, 129 bytes).
type DspStatusV80 struct {
	State            byte
	InputVoltageUSB  int16
	SystemVoltage    int16
	BatteryCurrent   int16
	TemperatureRaw   int16
	BatteryVoltage   int16
	BatteryVoltage2  int16
	PowerLevel       int16
	ExternalPowerSet bool
}

func (DspStatusV80) isMessage()            {}
func (s DspStatusV80) StatusState() byte   { return s.State }
func (s DspStatusV80) ExternalPower() bool { return s.ExternalPowerSet }
func (s DspStatusV80) TemperatureC() float64 {
	return float64(s.TemperatureRaw) / 100.0
}
func (s DspStatusV80) BatteryPercent() uint8 {
	return uint8(s.PowerLevel >> 8)
}

func decodeDspStatusV80(payload []byte) (DspStatusV80, error) {
	if err := checkLen(payload, 0, 64, "DspStatus80"); err != nil {
		return DspStatusV80{}, err
	}
	fields := []struct {
		off int
		dst *int16
	}{}
	var usb, sys, cur, temp, bv1, bv2, pl int16
	fields = []struct {
		off int
		dst *int16
	}{
		{4, &usb}, {8, &sys}, {18, &cur}, {40, &temp}, {53, &bv1}, {57, &bv2}, {61, &pl},
	}
	for _, fl := range fields {
		v, err := wire.ReadInt16(payload, fl.off)
		if err != nil {
			return DspStatusV80{}, err
		}
		*fl.dst = v
	}
	return DspStatusV80{
		State:            payload[1],
		InputVoltageUSB:  usb,
		SystemVoltage:    sys,
		BatteryCurrent:   cur,
		TemperatureRaw:   temp,
		BatteryVoltage:   bv1,
		BatteryVoltage2:  bv2,
		PowerLevel:       pl,
		ExternalPowerSet: payload[63] != 0,
	}, nil
}

// DspStatusV46 is the Gen2 Mevo DSP status (version 0x46, 71 bytes). Field
// layout beyond state/version is not yet mapped; the raw payload is kept
// for forward compatibility.
type DspStatusV46 struct {
	State   byte
	Version byte
	Payload []byte
}

func (DspStatusV46) isMessage()              {}
func (s DspStatusV46) StatusState() byte     { return s.State }
func (s DspStatusV46) BatteryPercent() uint8 { return 0 }
func (s DspStatusV46) ExternalPower() bool   { return false }
func (s DspStatusV46) TemperatureC() float64 { return 0.0 }

// PiStatus is the raw PI status response; its field layout is not yet
// mapped.
type PiStatus struct {
	Payload []byte
}

func (PiStatus) isMessage() {}

// ConfigAck is a generic command acknowledgment (3 bytes), type 0x95/0x94.
type ConfigAck struct {
	BusAddr  byte
	AckedCmd byte
	Negative bool
}

func (ConfigAck) isMessage() {}

func decodeAck(f wire.RawFrame, positive bool) (ConfigAck, error) {
	if err := checkLen(f.Payload, 0, 3, "ConfigAck"); err != nil {
		return ConfigAck{}, err
	}
	return ConfigAck{BusAddr: f.Payload[1], AckedCmd: f.Payload[2], Negative: !positive}, nil
}

// ModeAck is the mode-reset acknowledgment (3 bytes, always [02 00 00]),
// type 0xB1.
type ModeAck struct{}

func (ModeAck) isMessage() {}

func decodeModeAck(f wire.RawFrame) (ModeAck, error) {
	if err := checkLen(f.Payload, 0, 3, "ModeAck"); err != nil {
		return ModeAck{}, err
	}
	return ModeAck{}, nil
}

// Text is an ASCII debug/log message from a device subsystem, type 0xE3.
type Text struct {
	Text string
}

func (Text) isMessage() {}

func decodeText(f wire.RawFrame) (Text, error) {
	return Text{Text: trimControlBytes(f.Payload)}, nil
}

// DspDebugText is Gen2 DSP VT100 terminal debug output, type 0xF0. Unlike
// Text, the payload may carry terminal escape sequences and is kept as
// opaque bytes rather than ASCII-trimmed.
type DspDebugText struct {
	Payload []byte
}

func (DspDebugText) isMessage() {}

func decodeDspDebugText(f wire.RawFrame) (DspDebugText, error) {
	return DspDebugText{Payload: append([]byte(nil), f.Payload...)}, nil
}

// trimControlBytes strips leading/trailing bytes below 0x20 (nulls and
// control characters) that pad fixed-width ASCII fields.
func trimControlBytes(payload []byte) string {
	end := 0
	for i := len(payload) - 1; i >= 0; i-- {
		if payload[i] >= 0x20 {
			end = i + 1
			break
		}
	}
	start := 0
	for i := 0; i < end; i++ {
		if payload[i] >= 0x20 {
			start = i
			break
		}
	}
	return string(payload[start:end])
}
