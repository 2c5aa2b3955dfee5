package wire

import (
	"errors"
	"math"
	"testing"
)

func TestInt24SignExtension(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  int32
	}{
		{[]byte{0xFF, 0xFF, 0xFF}, -1},
		{[]byte{0x80, 0x00, 0x00}, -0x800000},
		{[]byte{0x7F, 0xFF, 0xFF}, 0x7FFFFF},
	}
	for _, c := range cases {
		got, err := ReadInt24(c.bytes, 0)
		if err != nil {
			t.Fatalf("ReadInt24(% X): %v", c.bytes, err)
		}
		if got != c.want {
			t.Fatalf("ReadInt24(% X) = %d, want %d", c.bytes, got, c.want)
		}
	}
}

func TestInt24RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 0x7FFFFF, -0x800000, 12345, -12345} {
		buf := WriteInt24(nil, v)
		got, err := ReadInt24(buf, 0)
		if err != nil {
			t.Fatalf("ReadInt24: %v", err)
		}
		if got != v {
			t.Fatalf("round-trip INT24 %d -> %d", v, got)
		}
	}
}

func TestUint16RoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 0xFFFF, 0x1234} {
		buf := WriteUint16(nil, v)
		got, err := ReadUint16(buf, 0)
		if err != nil || got != v {
			t.Fatalf("round-trip UINT16 %d -> %d (%v)", v, got, err)
		}
	}
}

func TestUint32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xFFFFFFFF, 0x12345678} {
		buf := WriteUint32(nil, v)
		got, err := ReadUint32(buf, 0)
		if err != nil || got != v {
			t.Fatalf("round-trip UINT32 %d -> %d (%v)", v, got, err)
		}
	}
}

func TestFloat40Zero(t *testing.T) {
	zero := []byte{0, 0, 0, 0, 0}
	v, err := ReadFloat40(zero, 0)
	if err != nil || v != 0.0 {
		t.Fatalf("ReadFloat40(zero) = %v, %v", v, err)
	}
	got := WriteFloat40(nil, 0.0)
	for i, b := range got {
		if b != zero[i] {
			t.Fatalf("WriteFloat40(0.0) = % X, want % X", got, zero)
		}
	}
}

func TestFloat40ZeroMantissaNonZeroExponent(t *testing.T) {
	// Non-zero exponent with zero mantissa must still decode as 0.0.
	buf := []byte{0x00, 0x05, 0x00, 0x00, 0x00}
	v, err := ReadFloat40(buf, 0)
	if err != nil || v != 0.0 {
		t.Fatalf("ReadFloat40 with zero mantissa = %v, %v", v, err)
	}
}

func TestFloat40KnownVectors(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  float64
	}{
		{[]byte{0x00, 0x01, 0x40, 0x00, 0x00}, 1.0},
		{[]byte{0x00, 0x04, 0x64, 0x00, 0x00}, 12.5},
		{[]byte{0x00, 0x02, 0xB6, 0x66, 0x67}, -2.3},
	}
	for _, c := range cases {
		got, err := ReadFloat40(c.bytes, 0)
		if err != nil {
			t.Fatalf("ReadFloat40(% X): %v", c.bytes, err)
		}
		if math.Abs(got-c.want) > 1e-6 {
			t.Fatalf("ReadFloat40(% X) = %v, want %v", c.bytes, got, c.want)
		}
	}
}

func TestFloat40RoundTrip(t *testing.T) {
	for _, v := range []float64{1.0, -1.0, 12.5, 100.0, 0.0254, -2.3, 0.001, 999.999} {
		buf := WriteFloat40(nil, v)
		got, err := ReadFloat40(buf, 0)
		if err != nil {
			t.Fatalf("ReadFloat40: %v", err)
		}
		if math.Abs((got-v)/v) > 1e-6 {
			t.Fatalf("round-trip FLOAT40 %v -> %v", v, got)
		}
	}
}

func TestPayloadTooShort(t *testing.T) {
	_, err := ReadInt24([]byte{0x01}, 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrPayloadTooShort) {
		t.Fatalf("expected ErrPayloadTooShort, got %v", err)
	}
}

func TestScaledReaders(t *testing.T) {
	buf := WriteInt24(nil, 12345)
	got, err := ReadInt24Scaled(buf, 0, 1000)
	if err != nil {
		t.Fatalf("ReadInt24Scaled: %v", err)
	}
	if math.Abs(got-12.345) > 1e-9 {
		t.Fatalf("ReadInt24Scaled = %v, want 12.345", got)
	}
}
