// Package addr defines the bus addresses used on the device's internal
// message bus.
package addr

import "fmt"

// BusAddr identifies one of the four peers on the device's internal bus.
type BusAddr byte

const (
	// App is this client.
	App BusAddr = 0x10
	// Pi is the camera/Wi-Fi processor.
	Pi BusAddr = 0x12
	// Avr is the radar microcontroller.
	Avr BusAddr = 0x30
	// Dsp is the radar signal processor.
	Dsp BusAddr = 0x40
)

// FromByte parses a wire byte into a BusAddr, rejecting unknown values.
func FromByte(b byte) (BusAddr, error) {
	switch BusAddr(b) {
	case App, Pi, Avr, Dsp:
		return BusAddr(b), nil
	default:
		return 0, fmt.Errorf("unknown bus address 0x%02X", b)
	}
}

// Byte returns the wire encoding of the address.
func (a BusAddr) Byte() byte { return byte(a) }

func (a BusAddr) String() string {
	switch a {
	case App:
		return "APP"
	case Pi:
		return "PI"
	case Avr:
		return "AVR"
	case Dsp:
		return "DSP"
	default:
		return fmt.Sprintf("BusAddr(0x%02X)", byte(a))
	}
}
