package seq

import (
	"errors"
	"time"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/protocol"
)

// AvrSync holds the results of the AVR sync phase. FactoryCal and IfCal are
// nil when the device skips the optional calibration exchange (observed
// when the AVR is in a stale state).
type AvrSync struct {
	Status     protocol.AvrStatus
	DevInfo    protocol.DevInfoResp
	Config     protocol.ConfigResp
	FactoryCal *protocol.CalDataResp
	IfCal      *protocol.CalParamResp
	AvrConfig  protocol.AvrConfigResp
}

// SyncAvr queries the AVR for status, device info, AVR/FW version
// parameters, radar config, factory and IF calibration, AVR config, and
// synchronizes the device clock.
func SyncAvr(c *conn.Connection) (AvrSync, error) {
	var out AvrSync

	for i := 0; i < 2; i++ {
		env, err := sendRecv(c, protocol.StatusPoll{}, addr.Avr, Timeout)
		if err != nil {
			return out, err
		}
		status, ok := env.Message.(protocol.AvrStatus)
		if !ok {
			return out, unexpected("sync_avr:status", env)
		}
		out.Status = status
	}

	for i := 0; i < 2; i++ {
		env, err := sendRecv(c, protocol.NewDevInfoReqCmd(), addr.Avr, Timeout)
		if err != nil {
			return out, err
		}
		devInfo, err := asType[protocol.DevInfoResp]("sync_avr:dev_info", env)
		if err != nil {
			return out, err
		}
		out.DevInfo = devInfo
	}

	for _, paramID := range []byte{0x0C, 0x0D} {
		env, err := sendRecv(c, protocol.ParamReadReqCmd{ParamID: paramID}, addr.Avr, Timeout)
		if err != nil {
			return out, err
		}
		if _, err := asType[protocol.ParamValueMsg]("sync_avr:param", env); err != nil {
			return out, err
		}
	}

	env, err := sendRecv(c, protocol.NewConfigQueryCmd(), addr.Avr, Timeout)
	if err != nil {
		return out, err
	}
	if out.Config, err = asType[protocol.ConfigResp]("sync_avr:config", env); err != nil {
		return out, err
	}

	// Factory calibration: the device may answer with an intermediate
	// ConfigAck before the CalDataResp, or may skip the exchange entirely.
	if err := c.Send(protocol.CalDataReqCmd{SubCmd: protocol.CalDataSubFactory}, addr.Avr); err != nil {
		return out, err
	}
	factoryCal, err := recvSkipAck(c, addr.Avr, Timeout, func(m protocol.Message) (protocol.CalDataResp, bool) {
		v, ok := m.(protocol.CalDataResp)
		return v, ok
	})
	switch {
	case err == nil:
		out.FactoryCal = &factoryCal
	case isTimeout(err):
		// optional — device may not have factory data staged.
	default:
		return out, err
	}

	// IF calibration: constant factory data, not used downstream, so a
	// ConfigNack (device in a stale state) is tolerated the same way.
	if err := c.Send(protocol.NewCalParamReqCmd(), addr.Avr); err != nil {
		return out, err
	}
	ifCal, err := recvSkipAck(c, addr.Avr, Timeout, func(m protocol.Message) (protocol.CalParamResp, bool) {
		v, ok := m.(protocol.CalParamResp)
		return v, ok
	})
	switch {
	case err == nil:
		out.IfCal = &ifCal
	case isTimeout(err):
	default:
		return out, err
	}

	env, err = sendRecv(c, protocol.NewAvrConfigQueryCmd(), addr.Avr, Timeout)
	if err != nil {
		return out, err
	}
	if out.AvrConfig, err = asType[protocol.AvrConfigResp]("sync_avr:avr_config", env); err != nil {
		return out, err
	}

	env, err = sendRecv(c, protocol.ParamReadReqCmd{ParamID: 0x64}, addr.Avr, Timeout)
	if err != nil {
		return out, err
	}
	if _, err := asType[protocol.ParamValueMsg]("sync_avr:param_final", env); err != nil {
		return out, err
	}

	env, err = sendRecv(c, protocol.TimeSyncCmd{
		Epoch:   uint32(time.Now().Unix()),
		Session: 0x00,
		Tail:    [2]byte{0x00, 0x01},
	}, addr.Avr, Timeout)
	if err != nil {
		return out, err
	}
	if _, err := asType[protocol.TimeSyncAck]("sync_avr:time_sync", env); err != nil {
		return out, err
	}

	return out, nil
}

func isTimeout(err error) bool {
	return errors.Is(err, conn.ErrTimeout)
}
