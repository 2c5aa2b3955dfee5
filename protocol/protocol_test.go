package protocol

import (
	"math"
	"testing"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/wire"
)

func TestStatusPollEncode(t *testing.T) {
	f := StatusPoll{PiMode: false}.Encode(addr.Dsp)
	if f.TypeID != TypeStatus || f.Dest != addr.Dsp || f.Src != addr.App {
		t.Fatalf("unexpected frame: %+v", f)
	}
	if f.Payload[1] != 0x01 {
		t.Fatalf("expected non-PI poll payload, got % X", f.Payload)
	}
	pi := StatusPoll{PiMode: true}.Encode(addr.Pi)
	if pi.Payload[1] != 0x03 {
		t.Fatalf("expected PI poll payload, got % X", pi.Payload)
	}
}

func TestDecodeUnknownFallsBack(t *testing.T) {
	f := wire.RawFrame{Dest: addr.App, Src: addr.Dsp, TypeID: 0x7E, Payload: []byte{0x01}}
	msg, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u, ok := msg.(Unknown)
	if !ok {
		t.Fatalf("expected Unknown, got %T", msg)
	}
	if u.TypeID != 0x7E || u.Source != addr.Dsp {
		t.Fatalf("unexpected Unknown: %+v", u)
	}
}

func TestDecodeAvrStatus(t *testing.T) {
	payload := make([]byte, 25)
	payload[0] = 0x18
	payload[1] = 0x01
	buf := wire.WriteFloat40(nil, 42.5)
	copy(payload[10:15], buf)
	f := wire.RawFrame{Dest: addr.App, Src: addr.Avr, TypeID: TypeStatus, Payload: payload}
	msg, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s, ok := msg.(AvrStatus)
	if !ok {
		t.Fatalf("expected AvrStatus, got %T", msg)
	}
	if s.State != 0x01 || math.Abs(s.Temperature-42.5) > 1e-6 {
		t.Fatalf("unexpected AvrStatus: %+v", s)
	}
}

func TestDecodeConfigAckNack(t *testing.T) {
	ack := wire.RawFrame{Dest: addr.App, Src: addr.Avr, TypeID: TypeConfigAck, Payload: []byte{0x02, 0x30, 0x05}}
	msg, err := Decode(ack)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a := msg.(ConfigAck)
	if a.Negative || a.BusAddr != 0x30 || a.AckedCmd != 0x05 {
		t.Fatalf("unexpected ConfigAck: %+v", a)
	}

	nack := wire.RawFrame{Dest: addr.App, Src: addr.Avr, TypeID: TypeConfigNack, Payload: []byte{0x02, 0x30, 0x05}}
	msg, err = Decode(nack)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	n := msg.(ConfigAck)
	if !n.Negative {
		t.Fatalf("expected Negative=true for ConfigNack")
	}
}

func TestParamValueRoundTrip(t *testing.T) {
	cmd := ParamValueCmd{ParamID: 0x07, Value: FloatParam(12.5)}
	f := cmd.Encode(addr.Avr)
	msg, err := Decode(wire.RawFrame{Dest: addr.App, Src: addr.Avr, TypeID: TypeParamValue, Payload: f.Payload})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pv := msg.(ParamValueMsg)
	if pv.ParamID != 0x07 || !pv.Value.IsFloat || math.Abs(pv.Value.Float40-12.5) > 1e-6 {
		t.Fatalf("unexpected ParamValueMsg: %+v", pv)
	}
}

func TestShotTextPredicates(t *testing.T) {
	f := wire.RawFrame{Dest: addr.App, Src: addr.Avr, TypeID: TypeShotText, Payload: []byte("PROCESSED\x00\x00")}
	msg, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	st := msg.(ShotText)
	if !st.IsProcessed() || st.IsIdle() || st.IsTrigger() {
		t.Fatalf("unexpected ShotText predicates: %+v", st)
	}
}

func TestCamConfigRoundTrip(t *testing.T) {
	cfg := CamConfig{
		ResolutionWidth:  1024,
		ResolutionHeight: 768,
		Quality:          80,
		Framerate:        10,
	}
	cmd := CamConfigCmd{Config: cfg}
	f := cmd.Encode(addr.Pi)
	msg, err := Decode(wire.RawFrame{Dest: addr.App, Src: addr.Pi, TypeID: TypeCamConfig, Payload: f.Payload})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := msg.(CamConfigMsg).Config
	if got.ResolutionWidth != 1024 || got.ResolutionHeight != 768 || got.Quality != 80 {
		t.Fatalf("unexpected CamConfig round trip: %+v", got)
	}
}

func TestClubPrcPageRequest(t *testing.T) {
	req := EncodeClubPrcPageRequest(9)
	if len(req) != 77 {
		t.Fatalf("expected 77-byte request, got %d", len(req))
	}
	if req[0] != 0x4C {
		t.Fatalf("unexpected stride marker: 0x%02X", req[0])
	}
}
