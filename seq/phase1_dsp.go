package seq

import (
	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/protocol"
)

// DspSync holds the results of the DSP sync phase.
type DspSync struct {
	Status   protocol.DspStatus
	HwInfo   protocol.DspQueryResp
	DevInfo  protocol.DevInfoResp
	ProdInfo [3]protocol.ProdInfoResp
	Config   protocol.ConfigResp
}

// SyncDsp queries the DSP for status, hardware info, device info, product
// info, and radar configuration.
func SyncDsp(c *conn.Connection) (DspSync, error) {
	var out DspSync

	env, err := sendRecv(c, protocol.StatusPoll{}, addr.Dsp, Timeout)
	if err != nil {
		return out, err
	}
	status, ok := env.Message.(protocol.DspStatus)
	if !ok {
		return out, unexpected("sync_dsp:status", env)
	}
	out.Status = status

	env, err = sendRecv(c, protocol.NewDspQueryCmd(), addr.Dsp, Timeout)
	if err != nil {
		return out, err
	}
	if out.HwInfo, err = asType[protocol.DspQueryResp]("sync_dsp:hw_info", env); err != nil {
		return out, err
	}

	env, err = sendRecv(c, protocol.NewDevInfoReqCmd(), addr.Dsp, Timeout)
	if err != nil {
		return out, err
	}
	if out.DevInfo, err = asType[protocol.DevInfoResp]("sync_dsp:dev_info", env); err != nil {
		return out, err
	}

	for i, sub := range []byte{0x00, 0x08, 0x09} {
		env, err = sendRecv(c, protocol.ProdInfoReqCmd{SubQuery: sub}, addr.Dsp, Timeout)
		if err != nil {
			return out, err
		}
		if out.ProdInfo[i], err = asType[protocol.ProdInfoResp]("sync_dsp:prod_info", env); err != nil {
			return out, err
		}
	}

	env, err = sendRecv(c, protocol.NewConfigQueryCmd(), addr.Dsp, Timeout)
	if err != nil {
		return out, err
	}
	if out.Config, err = asType[protocol.ConfigResp]("sync_dsp:config", env); err != nil {
		return out, err
	}

	return out, nil
}
