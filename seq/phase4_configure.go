package seq

import (
	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/protocol"
)

// AvrSettings is the set of AVR parameters written during the post-sync
// configuration phase.
type AvrSettings struct {
	// Mode is the detection mode commsIndex — see the Mode* constants in
	// the protocol package.
	Mode int
	// Params are BF parameter writes (ball type, tee height, tracking
	// percentage, and so on).
	Params []protocol.ParamValueCmd
	RadarCal protocol.RadarCalCmd
}

// ConfigureAvr writes AVR parameters, sets the detection mode, pushes
// radar calibration, and commits each with a B0 config-commit exchange —
// the pattern observed for every AVR configuration step.
func ConfigureAvr(c *conn.Connection, settings AvrSettings) error {
	commit := protocol.AvrConfigCmd{Arm: false}

	for _, param := range settings.Params {
		env, err := sendRecv(c, param, addr.Avr, Timeout)
		if err != nil {
			return err
		}
		if _, err := asType[protocol.ConfigAck]("configure_avr:param", env); err != nil {
			return err
		}
		env, err = sendRecv(c, commit, addr.Avr, Timeout)
		if err != nil {
			return err
		}
		if _, err := asType[protocol.ConfigAck]("configure_avr:param_commit", env); err != nil {
			return err
		}
	}

	env, err := sendRecv(c, protocol.ModeSetCmd{Mode: byte(settings.Mode)}, addr.Avr, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ModeSetMsg]("configure_avr:mode", env); err != nil {
		return err
	}
	env, err = sendRecv(c, commit, addr.Avr, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ConfigAck]("configure_avr:mode_commit", env); err != nil {
		return err
	}

	env, err = sendRecv(c, settings.RadarCal, addr.Avr, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.RadarCalAck]("configure_avr:radar_cal", env); err != nil {
		return err
	}
	env, err = sendRecv(c, commit, addr.Avr, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ConfigAck]("configure_avr:radar_cal_commit", env); err != nil {
		return err
	}

	return nil
}

// ConfigureCamera pushes the camera configuration, reads it back, starts
// the camera, and sets the PI keepalive interval parameter.
func ConfigureCamera(c *conn.Connection, config protocol.CamConfig) error {
	env, err := sendRecv(c, protocol.CamConfigCmd{Config: config}, addr.Pi, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ConfigAck]("configure_camera:push", env); err != nil {
		return err
	}

	env, err = sendRecv(c, protocol.NewCamConfigReqCmd(), addr.Pi, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.CamConfigMsg]("configure_camera:readback", env); err != nil {
		return err
	}

	env, err = sendRecv(c, protocol.CamStateCmd{State: 0x01}, addr.Pi, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ConfigAck]("configure_camera:start", env); err != nil {
		return err
	}

	env, err = sendRecv(c, protocol.ParamValueCmd{ParamID: 0x02, Value: protocol.IntParam(10)}, addr.Pi, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ConfigAck]("configure_camera:keepalive_interval", env); err != nil {
		return err
	}

	return nil
}

// Arm performs the final pre-shot checks: a last DSP status poll, the B0
// ARM trigger, a PI status poll, and waits for the device's "ARMED" text
// confirmation.
func Arm(c *conn.Connection) error {
	env, err := sendRecv(c, protocol.StatusPoll{}, addr.Dsp, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.DspStatus]("arm:dsp_status", env); err != nil {
		return err
	}

	env, err = sendRecv(c, protocol.AvrConfigCmd{Arm: true}, addr.Avr, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.ConfigAck]("arm:trigger", env); err != nil {
		return err
	}

	env, err = sendRecv(c, protocol.StatusPoll{PiMode: true}, addr.Pi, Timeout)
	if err != nil {
		return err
	}
	if _, err := asType[protocol.PiStatus]("arm:pi_status", env); err != nil {
		return err
	}

	return waitForArmed(c, Timeout)
}
