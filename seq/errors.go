// Package seq drives the device's multi-step request/response exchanges:
// the six handshake phases, keepalive polling, and the post-shot re-arm
// cycle. It holds no connection state of its own — every function takes a
// *conn.Connection and returns once its exchange completes or times out.
package seq

import (
	"fmt"
	"time"

	"github.com/divotmaker/ironsight/conn"
)

// Timeout is the per-exchange deadline applied throughout this package.
const Timeout = 2 * time.Second

func unexpected(op string, env conn.Envelope) error {
	return conn.ProtocolError(op, fmt.Sprintf("unexpected message 0x%02X from %s: %+v", env.TypeID, env.Src, env.Message))
}
