package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/divotmaker/ironsight/addr"
)

func TestParseFrameWorkedExample(t *testing.T) {
	wireBytes := []byte{0xF0, 0x40, 0x10, 0xAA, 0x01, 0x01, 0x00, 0xFC, 0xF1}
	f, err := ParseFrame(wireBytes)
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Dest != addr.Dsp || f.Src != addr.App || f.TypeID != 0xAA {
		t.Fatalf("unexpected frame: %+v", f)
	}
	if !bytes.Equal(f.Payload, []byte{0x01, 0x01}) {
		t.Fatalf("unexpected payload: % X", f.Payload)
	}
}

func TestEncodeWorkedExample(t *testing.T) {
	f := RawFrame{Dest: addr.Dsp, Src: addr.App, TypeID: 0xAA, Payload: []byte{0x01, 0x01}}
	got := f.Encode()
	want := []byte{0xF0, 0x40, 0x10, 0xAA, 0x01, 0x01, 0x00, 0xFC, 0xF1}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	cases := []RawFrame{
		{Dest: addr.App, Src: addr.Dsp, TypeID: 0x00, Payload: nil},
		{Dest: addr.Avr, Src: addr.App, TypeID: 0xD4, Payload: bytes.Repeat([]byte{0x12}, 160)},
		{Dest: addr.Pi, Src: addr.App, TypeID: 0x42, Payload: []byte{0xF0, 0xF1, 0xFD, 0xFA}},
	}
	for _, f := range cases {
		wireBytes := f.Encode()
		got, err := ParseFrame(wireBytes)
		if err != nil {
			t.Fatalf("ParseFrame: %v", err)
		}
		if got.Dest != f.Dest || got.Src != f.Src || got.TypeID != f.TypeID || !bytes.Equal(got.Payload, f.Payload) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, f)
		}
	}
}

func TestChecksumCorruption(t *testing.T) {
	f := RawFrame{Dest: addr.Dsp, Src: addr.App, TypeID: 0xAA, Payload: []byte{0x01, 0x01}}
	wireBytes := f.Encode()
	wireBytes[len(wireBytes)-2] ^= 0xFF
	_, err := ParseFrame(wireBytes)
	if err == nil {
		t.Fatalf("expected checksum error")
	}
	if !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}
}

func TestSplitterSingleChunk(t *testing.T) {
	f := RawFrame{Dest: addr.Dsp, Src: addr.App, TypeID: 0xAA, Payload: []byte{0x01, 0x01}}
	s := NewFrameSplitter()
	frames := s.Feed(f.Encode())
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
}

func TestSplitterSplitAcrossChunks(t *testing.T) {
	f := RawFrame{Dest: addr.Dsp, Src: addr.App, TypeID: 0xAA, Payload: []byte{0x01, 0x01}}
	wireBytes := f.Encode()
	s := NewFrameSplitter()
	var frames [][]byte
	for i := 0; i < len(wireBytes); i++ {
		frames = append(frames, s.Feed(wireBytes[i:i+1])...)
	}
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame after full chunked feed, got %d", len(frames))
	}
}

func TestSplitterConcatenatedFramesInOrder(t *testing.T) {
	f1 := RawFrame{Dest: addr.Dsp, Src: addr.App, TypeID: 0x01, Payload: []byte{0xAA}}
	f2 := RawFrame{Dest: addr.Avr, Src: addr.App, TypeID: 0x02, Payload: []byte{0xBB}}
	f3 := RawFrame{Dest: addr.Pi, Src: addr.App, TypeID: 0x03, Payload: []byte{0xCC}}
	var stream []byte
	stream = append(stream, f1.Encode()...)
	stream = append(stream, f2.Encode()...)
	stream = append(stream, f3.Encode()...)

	s := NewFrameSplitter()
	frames := s.Feed(stream)
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	for i, want := range []RawFrame{f1, f2, f3} {
		got, err := ParseFrame(frames[i])
		if err != nil {
			t.Fatalf("ParseFrame(frame %d): %v", i, err)
		}
		if got.TypeID != want.TypeID {
			t.Fatalf("frame %d out of order: got type 0x%02X, want 0x%02X", i, got.TypeID, want.TypeID)
		}
	}
}

func TestSplitterDiscardsGarbagePrefix(t *testing.T) {
	f := RawFrame{Dest: addr.Dsp, Src: addr.App, TypeID: 0xAA, Payload: []byte{0x01}}
	wireBytes := append([]byte{0x00, 0x11, 0x22}, f.Encode()...)
	s := NewFrameSplitter()
	frames := s.Feed(wireBytes)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
}
