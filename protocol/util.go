package protocol

import "github.com/divotmaker/ironsight/wire"

// checkLen verifies payload has at least need bytes starting at offset,
// returning a DecodeError carrying msgType for diagnostics otherwise.
func checkLen(payload []byte, offset, need int, msgType string) error {
	if len(payload) < offset+need {
		return wire.PayloadTooShort(msgType, offset+need, len(payload)).WithRaw(payload)
	}
	return nil
}
