package seq

import (
	"strings"
	"time"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/protocol"
)

// recvMsg receives the next message, silently skipping 0xE3 Text and 0xF0
// DspDebugText debug logs. The timeout tracks a deadline rather than
// resetting per call, so a stream of debug logs can't extend it
// indefinitely.
func recvMsg(c *conn.Connection, timeout time.Duration) (conn.Envelope, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return conn.Envelope{}, &conn.ConnError{Op: "recv", Kind: conn.ErrTimeout, Timeout: timeout}
		}
		env, err := c.RecvTimeout(remaining)
		if err != nil {
			return conn.Envelope{}, err
		}
		switch env.Message.(type) {
		case protocol.Text, protocol.DspDebugText:
			continue
		}
		return env, nil
	}
}

// sendRecv sends cmd to dest, then returns the next response from dest
// that isn't a Text or DspDebugText debug log, an unsolicited
// CamState/ModeAck/ConfigNack, or an Unknown variant. Messages from other bus sources (late responses that
// arrive out of turn) are silently discarded.
func sendRecv(c *conn.Connection, cmd protocol.Command, dest addr.BusAddr, timeout time.Duration) (conn.Envelope, error) {
	if err := c.Send(cmd, dest); err != nil {
		return conn.Envelope{}, err
	}
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return conn.Envelope{}, &conn.ConnError{Op: "send_recv " + dest.String(), Kind: conn.ErrTimeout, Timeout: timeout}
		}
		env, err := c.RecvTimeout(remaining)
		if err != nil {
			return conn.Envelope{}, err
		}
		if env.Src != dest {
			continue
		}
		switch env.Message.(type) {
		case protocol.Text, protocol.DspDebugText, protocol.CamStateMsg, protocol.ModeAck, protocol.Unknown:
			continue
		}
		if ack, ok := env.Message.(protocol.ConfigAck); ok && ack.Negative {
			continue
		}
		return env, nil
	}
}

// recvSkipAck receives the next message from `from` for which extract
// returns ok, skipping Text, ConfigAck/ConfigNack, and Unknown variants
// along the way. Some exchanges (CalDataReq, CalParamReq) interleave an
// intermediate ConfigAck before the actual response; this consumes it.
func recvSkipAck[T any](c *conn.Connection, from addr.BusAddr, timeout time.Duration, extract func(protocol.Message) (T, bool)) (T, error) {
	var zero T
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return zero, conn.ErrTimeout
		}
		env, err := c.RecvTimeout(remaining)
		if err != nil {
			return zero, err
		}
		if env.Src != from {
			continue
		}
		switch env.Message.(type) {
		case protocol.Text, protocol.ConfigAck, protocol.Unknown:
			continue
		}
		if v, ok := extract(env.Message); ok {
			return v, nil
		}
		return zero, conn.ProtocolError("recv_skip_ack", "unexpected message")
	}
}

// drainUntil consumes messages until pred matches one, or the deadline
// expires.
func drainUntil(c *conn.Connection, timeout time.Duration, pred func(protocol.Message) bool) error {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return conn.ErrTimeout
		}
		env, err := c.RecvTimeout(remaining)
		if err != nil {
			return err
		}
		if pred(env.Message) {
			return nil
		}
	}
}

// waitForArmed blocks until an "ARMED" (not "CANCELLED") Text message
// arrives, or the deadline expires. Unlike recvMsg, Text messages are
// inspected here rather than skipped.
func waitForArmed(c *conn.Connection, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return conn.ErrTimeout
		}
		env, err := c.RecvTimeout(remaining)
		if err != nil {
			return err
		}
		if text, ok := env.Message.(protocol.Text); ok {
			if strings.Contains(text.Text, "ARMED") && !strings.Contains(text.Text, "CANCELLED") {
				return nil
			}
		}
	}
}

// asType asserts env.Message to T, or returns a protocol error describing
// the mismatch.
func asType[T protocol.Message](op string, env conn.Envelope) (T, error) {
	if v, ok := env.Message.(T); ok {
		return v, nil
	}
	var zero T
	return zero, unexpected(op, env)
}
