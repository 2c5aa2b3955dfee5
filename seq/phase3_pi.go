package seq

import (
	"strings"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/protocol"
)

// PiSync holds the results of the PI sync phase.
type PiSync struct {
	DevInfo   protocol.DevInfoResp
	CamConfig protocol.CamConfig
	SSID      string
	Password  string
}

// piParamBatch1 is the single capability-flag read made before the camera
// config exchange; piParamBatch2 and piParamBatch3 are the two batches read
// after the network credentials.
var piParamBatch1 = []byte{0x0A}
var piParamBatch2 = []byte{0x01, 0x07, 0x08, 0x09}
var piParamBatch3 = []byte{0x06, 0x0B, 0x03, 0x04, 0x05}

// SyncPi queries the PI for status, device info, capability parameters,
// camera config, and network credentials. Sensor activation (0x90) and the
// WiFi scan (0x87) observed between these reads are not driven — they are
// not needed to complete the handshake.
func SyncPi(c *conn.Connection) (PiSync, error) {
	var out PiSync

	env, err := sendRecv(c, protocol.StatusPoll{PiMode: true}, addr.Pi, Timeout)
	if err != nil {
		return out, err
	}
	if _, err := asType[protocol.PiStatus]("sync_pi:status", env); err != nil {
		return out, err
	}

	env, err = sendRecv(c, protocol.NewDevInfoReqCmd(), addr.Pi, Timeout)
	if err != nil {
		return out, err
	}
	if out.DevInfo, err = asType[protocol.DevInfoResp]("sync_pi:dev_info", env); err != nil {
		return out, err
	}

	for _, paramID := range piParamBatch1 {
		if err := readPiParam(c, paramID); err != nil {
			return out, err
		}
	}

	for i := 0; i < 2; i++ {
		env, err := sendRecv(c, protocol.NewCamConfigReqCmd(), addr.Pi, Timeout)
		if err != nil {
			return out, err
		}
		camConfig, err := asType[protocol.CamConfigMsg]("sync_pi:cam_config", env)
		if err != nil {
			return out, err
		}
		out.CamConfig = camConfig.Config
	}

	env, err = sendRecv(c, protocol.NetConfigReqCmd{QueryPassword: false}, addr.Pi, Timeout)
	if err != nil {
		return out, err
	}
	if _, err := asType[protocol.NetConfigResp]("sync_pi:net_config_ssid", env); err != nil {
		return out, err
	}

	env, err = sendRecv(c, protocol.NetConfigReqCmd{QueryPassword: true}, addr.Pi, Timeout)
	if err != nil {
		return out, err
	}
	pwResp, err := asType[protocol.NetConfigResp]("sync_pi:net_config_password", env)
	if err != nil {
		return out, err
	}
	parts := strings.SplitN(pwResp.Text, "\x00", 2)
	out.SSID = parts[0]
	if len(parts) > 1 {
		out.Password = parts[1]
	}

	for _, paramID := range piParamBatch2 {
		if err := readPiParam(c, paramID); err != nil {
			return out, err
		}
	}
	for _, paramID := range piParamBatch3 {
		if err := readPiParam(c, paramID); err != nil {
			return out, err
		}
	}

	return out, nil
}

func readPiParam(c *conn.Connection, paramID byte) error {
	env, err := sendRecv(c, protocol.ParamReadReqCmd{ParamID: paramID}, addr.Pi, Timeout)
	if err != nil {
		return err
	}
	_, err = asType[protocol.ParamValueMsg]("sync_pi:param", env)
	return err
}
