package addr

import "testing"

func TestFromByteRoundTrip(t *testing.T) {
	for _, a := range []BusAddr{App, Pi, Avr, Dsp} {
		got, err := FromByte(a.Byte())
		if err != nil {
			t.Fatalf("FromByte(%v): %v", a, err)
		}
		if got != a {
			t.Fatalf("FromByte(%v) = %v, want %v", a.Byte(), got, a)
		}
	}
}

func TestFromByteUnknown(t *testing.T) {
	if _, err := FromByte(0x99); err == nil {
		t.Fatalf("expected error for unknown bus address")
	}
}

func TestString(t *testing.T) {
	if App.String() != "APP" {
		t.Fatalf("App.String() = %q", App.String())
	}
	if got := BusAddr(0x77).String(); got != "BusAddr(0x77)" {
		t.Fatalf("unexpected String() for unknown addr: %q", got)
	}
}
