package wire

import (
	"bytes"
	"fmt"

	"github.com/divotmaker/ironsight/addr"
)

// Wire sentinels and escape codes.
const (
	startSentinel byte = 0xF0
	endSentinel   byte = 0xF1
	escapeByte    byte = 0xFD
	escExtra      byte = 0xFA

	escStart byte = 0x01
	escEnd   byte = 0x02
	escEsc   byte = 0x03
	escExtraCode byte = 0x04
)

// RawFrame is a decoded but untyped frame.
type RawFrame struct {
	Dest    addr.BusAddr
	Src     addr.BusAddr
	TypeID  byte
	Payload []byte
}

// stuffBytes escapes the four reserved octets so they cannot be confused
// with frame sentinels when they appear inside the frame body.
func stuffBytes(in []byte) []byte {
	out := make([]byte, 0, len(in)+4)
	for _, b := range in {
		switch b {
		case startSentinel:
			out = append(out, escapeByte, escStart)
		case endSentinel:
			out = append(out, escapeByte, escEnd)
		case escapeByte:
			out = append(out, escapeByte, escEsc)
		case escExtra:
			out = append(out, escapeByte, escExtraCode)
		default:
			out = append(out, b)
		}
	}
	return out
}

// unstuffedByte pairs each decoded interior byte with its wire offset, so
// the checksum boundary (the position of the first checksum byte on the
// wire) can be located precisely.
type unstuffedByte struct {
	b      byte
	offset int
}

func unstuffInterior(wire []byte) ([]unstuffedByte, error) {
	out := make([]unstuffedByte, 0, len(wire))
	for i := 0; i < len(wire); {
		b := wire[i]
		if b == escapeByte {
			if i+1 >= len(wire) {
				return nil, &FrameError{Kind: ErrInvalidEscape, Offset: i, Code: b}
			}
			code := wire[i+1]
			var decoded byte
			switch code {
			case escStart:
				decoded = startSentinel
			case escEnd:
				decoded = endSentinel
			case escEsc:
				decoded = escapeByte
			case escExtraCode:
				decoded = escExtra
			default:
				return nil, &FrameError{Kind: ErrInvalidEscape, Offset: i, Code: code}
			}
			out = append(out, unstuffedByte{decoded, i})
			i += 2
		} else {
			out = append(out, unstuffedByte{b, i})
			i++
		}
	}
	return out, nil
}

// checksum16 computes the device's 16-bit unsigned additive checksum.
func checksum16(bs []byte) uint16 {
	var sum uint16
	for _, b := range bs {
		sum += uint16(b)
	}
	return sum
}

// ParseFrame parses a complete wire frame (starting with F0, ending with
// F1) into a RawFrame.
func ParseFrame(wire []byte) (RawFrame, error) {
	if len(wire) < 7 {
		return RawFrame{}, &FrameError{Kind: ErrFrameTooShort}
	}
	if wire[0] != startSentinel {
		return RawFrame{}, &FrameError{Kind: ErrMissingStart}
	}
	if wire[len(wire)-1] != endSentinel {
		return RawFrame{}, &FrameError{Kind: ErrMissingEnd}
	}
	interior, err := unstuffInterior(wire[1 : len(wire)-1])
	if err != nil {
		return RawFrame{}, err
	}
	if len(interior) < 5 {
		return RawFrame{}, &FrameError{Kind: ErrFrameTooShort}
	}

	// Last two unstuffed bytes are the received checksum; everything
	// before them is the DEST+SRC+TYPE+PAYLOAD region. Compute the sum
	// over the *stuffed* bytes up to (but not including) the wire
	// position of the first checksum byte.
	n := len(interior)
	csHi := interior[n-2]
	csLo := interior[n-1]
	received := uint16(csHi.b)<<8 | uint16(csLo.b)

	csWireStart := csHi.offset
	computed := checksum16(wire[1 : 1+csWireStart])
	if computed != received {
		return RawFrame{}, &FrameError{Kind: ErrChecksum, Expected: received, Computed: computed}
	}

	body := make([]byte, n-2)
	for i := 0; i < n-2; i++ {
		body[i] = interior[i].b
	}

	dest, err := addr.FromByte(body[0])
	if err != nil {
		return RawFrame{}, &FrameError{Kind: ErrUnknownBusAddr}
	}
	src, err := addr.FromByte(body[1])
	if err != nil {
		return RawFrame{}, &FrameError{Kind: ErrUnknownBusAddr}
	}

	return RawFrame{
		Dest:    dest,
		Src:     src,
		TypeID:  body[2],
		Payload: body[3:],
	}, nil
}

// Encode builds the wire representation of f: DEST+SRC+TYPE+PAYLOAD,
// stuffed, followed by the stuffed checksum, wrapped in F0/F1.
func (f RawFrame) Encode() []byte {
	body := make([]byte, 0, 3+len(f.Payload))
	body = append(body, f.Dest.Byte(), f.Src.Byte(), f.TypeID)
	body = append(body, f.Payload...)

	stuffedBody := stuffBytes(body)
	cs := checksum16(stuffedBody)
	csBytes := []byte{byte(cs >> 8), byte(cs)}
	stuffedCS := stuffBytes(csBytes)

	out := make([]byte, 0, 1+len(stuffedBody)+len(stuffedCS)+1)
	out = append(out, startSentinel)
	out = append(out, stuffedBody...)
	out = append(out, stuffedCS...)
	out = append(out, endSentinel)
	return out
}

func (f RawFrame) String() string {
	return fmt.Sprintf("RawFrame{dest=%s src=%s type=0x%02X len=%d}", f.Dest, f.Src, f.TypeID, len(f.Payload))
}

// FrameSplitter is a resumable state machine that accepts arbitrary byte
// chunks (TCP segments) and emits zero or more complete wire frames.
//
// Policy: bytes before the first F0 are discarded. Between F0 and F1, any
// byte (including escape sequences) is accepted without validation —
// validation happens at ParseFrame time. On F1 the inclusive F0..F1 slice
// is emitted as one frame. Partial trailing data remains buffered.
type FrameSplitter struct {
	buf []byte
}

// NewFrameSplitter returns a splitter with an empty buffer.
func NewFrameSplitter() *FrameSplitter {
	return &FrameSplitter{}
}

// Feed appends data to the splitter's buffer and returns every complete
// frame (in arrival order) that can now be extracted.
func (s *FrameSplitter) Feed(data []byte) [][]byte {
	s.buf = append(s.buf, data...)
	var frames [][]byte
	for {
		start := bytes.IndexByte(s.buf, startSentinel)
		if start < 0 {
			s.buf = s.buf[:0]
			break
		}
		if start > 0 {
			s.buf = s.buf[start:]
		}
		end := bytes.IndexByte(s.buf[1:], endSentinel)
		if end < 0 {
			// Incomplete frame; keep buffered bytes from F0 onward.
			break
		}
		end++ // end was relative to s.buf[1:]
		frame := append([]byte(nil), s.buf[:end+1]...)
		frames = append(frames, frame)
		s.buf = s.buf[end+1:]
	}
	s.compact()
	return frames
}

// compact reclaims buffer capacity once consumed space dominates, so a
// long-lived connection does not grow its buffer unboundedly.
func (s *FrameSplitter) compact() {
	if cap(s.buf) > 1024 && len(s.buf) < cap(s.buf)/4 {
		s.buf = append([]byte(nil), s.buf...)
	}
}
