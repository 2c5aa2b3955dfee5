package seq

import (
	"time"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/protocol"
)

// KeepaliveStatus is the status collected from all three bus peers during
// a keepalive poll.
type KeepaliveStatus struct {
	Dsp protocol.DspStatus
	Avr protocol.AvrStatus
	Pi  protocol.PiStatus
}

// Keepalive polls DSP, AVR, and PI status in sequence. Callers should
// invoke this when their read deadline elapses without device traffic, to
// keep the device's connection-supervision timer from expiring.
func Keepalive(c *conn.Connection) (KeepaliveStatus, error) {
	var out KeepaliveStatus

	env, err := sendRecv(c, protocol.StatusPoll{}, addr.Dsp, Timeout)
	if err != nil {
		return out, err
	}
	if out.Dsp, err = asType[protocol.DspStatus]("keepalive:dsp", env); err != nil {
		return out, err
	}

	env, err = sendRecv(c, protocol.StatusPoll{}, addr.Avr, Timeout)
	if err != nil {
		return out, err
	}
	if out.Avr, err = asType[protocol.AvrStatus]("keepalive:avr", env); err != nil {
		return out, err
	}

	env, err = sendRecv(c, protocol.StatusPoll{PiMode: true}, addr.Pi, Timeout)
	if err != nil {
		return out, err
	}
	if out.Pi, err = asType[protocol.PiStatus]("keepalive:pi", env); err != nil {
		return out, err
	}

	return out, nil
}

// CompleteShot drives the device through the post-shot cycle after a
// ShotText "PROCESSED" message arrives: acknowledges the shot data,
// drains everything until the device reports "IDLE", commits config,
// requests (and discards) the duplicate shot result, and re-arms.
//
// log, if non-nil, is called with notable milestones ("waiting for
// IDLE...", "IDLE", "RE-ARMED").
func CompleteShot(c *conn.Connection, log func(string)) error {
	if log == nil {
		log = func(string) {}
	}

	// Best-effort ack — the drain phase below consumes whatever the
	// device sends back, acked or not.
	for i := 0; i < 2; i++ {
		if err := c.Send(protocol.NewShotDataAckCmd(), addr.Avr); err != nil {
			return err
		}
	}

	log("waiting for IDLE...")
	deadline := time.Now().Add(Timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return conn.ErrTimeout
		}
		env, err := recvMsg(c, remaining)
		if err != nil {
			return err
		}
		if st, ok := env.Message.(protocol.ShotText); ok && st.IsIdle() {
			log("IDLE")
			break
		}
	}

	if err := c.Send(protocol.NewConfigQueryCmd(), addr.Avr); err != nil {
		return err
	}
	drainConfigCommit(c, Timeout)

	if err := c.Send(protocol.NewShotResultReqCmd(), addr.Avr); err != nil {
		return err
	}
	_ = drainUntil(c, Timeout, func(m protocol.Message) bool {
		_, ok := m.(protocol.ClubResult)
		return ok
	})

	env, err := sendRecv(c, protocol.AvrConfigCmd{Arm: true}, addr.Avr, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ConfigAck]("complete_shot:arm", env); err != nil {
		return err
	}

	if err := waitForArmed(c, Timeout); err != nil {
		return err
	}
	log("RE-ARMED")
	return nil
}

// drainConfigCommit waits for both a ModeAck and a ConfigResp (in either
// order) following a post-shot ConfigQuery, best-effort: a partial result
// on timeout is not fatal, since arming proceeds regardless.
func drainConfigCommit(c *conn.Connection, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	gotModeAck, gotConfigResp := false, false
	for !gotModeAck || !gotConfigResp {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		env, err := c.RecvTimeout(remaining)
		if err != nil {
			return
		}
		switch env.Message.(type) {
		case protocol.ModeAck:
			gotModeAck = true
		case protocol.ConfigResp:
			gotConfigResp = true
		}
	}
}
