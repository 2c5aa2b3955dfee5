package protocol

import "github.com/divotmaker/ironsight/wire"

// CamStateMsg echoes a camera start/stop command, type 0x81. On PI→App,
// 0x00 means off and 0x01 means on.
type CamStateMsg struct {
	State byte
}

func (CamStateMsg) isMessage() {}

func decodeCamStateAck(f wire.RawFrame) (CamStateMsg, error) {
	if err := checkLen(f.Payload, 0, 2, "CamState"); err != nil {
		return CamStateMsg{}, err
	}
	return CamStateMsg{State: f.Payload[1]}, nil
}

// CamConfig is the S51 camera configuration (52 bytes), type 0x82.
type CamConfig struct {
	DynamicConfig                             bool
	ResolutionWidth                           int16
	ResolutionHeight                          int16
	Rotation                                  int16
	EV                                        int16
	Quality                                   byte
	Framerate                                 byte
	StreamingFramerate                        byte
	RingbufferPretimeMs                       int16
	RingbufferPosttimeMs                      int16
	RawCameraMode                             byte
	FusionCameraMode                          bool
	RawShutterSpeedMax                        float64
	RawEvRoiX                                 int16
	RawEvRoiY                                 int16
	RawEvRoiWidth                             int16
	RawEvRoiHeight                            int16
	RawXOffset                                int16
	RawBin44                                  bool
	RawLivePreviewWriteIntervalMs             int16
	RawYOffset                                int16
	BufferSubSamplingPreTriggerDiv            int16
	BufferSubSamplingPostTriggerDiv           int16
	BufferSubSamplingSwitchTimeOffset         float64
	BufferSubSamplingTotalBufferSize          int16
	BufferSubSamplingPreTriggerBufferSize     int16
}

// encode serializes a CamConfig into its 52-byte S51 wire form, including
// the leading 0x33 size marker.
func (c CamConfig) encode() []byte {
	buf := make([]byte, 0, 52)
	buf = append(buf, 0x33)
	buf = append(buf, boolByte(c.DynamicConfig))
	buf = wire.WriteInt16(buf, c.ResolutionWidth)
	buf = wire.WriteInt16(buf, c.ResolutionHeight)
	buf = wire.WriteInt16(buf, c.Rotation)
	buf = wire.WriteInt16(buf, c.EV)
	buf = append(buf, c.Quality, c.Framerate, c.StreamingFramerate)
	buf = wire.WriteInt16(buf, c.RingbufferPretimeMs)
	buf = wire.WriteInt16(buf, c.RingbufferPosttimeMs)
	buf = append(buf, c.RawCameraMode, boolByte(c.FusionCameraMode))
	buf = wire.WriteFloat40(buf, c.RawShutterSpeedMax)
	buf = wire.WriteInt16(buf, c.RawEvRoiX)
	buf = wire.WriteInt16(buf, c.RawEvRoiY)
	buf = wire.WriteInt16(buf, c.RawEvRoiWidth)
	buf = wire.WriteInt16(buf, c.RawEvRoiHeight)
	buf = wire.WriteInt16(buf, c.RawXOffset)
	buf = append(buf, boolByte(c.RawBin44))
	buf = wire.WriteInt16(buf, c.RawLivePreviewWriteIntervalMs)
	buf = wire.WriteInt16(buf, c.RawYOffset)
	buf = wire.WriteInt16(buf, c.BufferSubSamplingPreTriggerDiv)
	buf = wire.WriteInt16(buf, c.BufferSubSamplingPostTriggerDiv)
	buf = wire.WriteFloat40(buf, c.BufferSubSamplingSwitchTimeOffset)
	buf = wire.WriteInt16(buf, c.BufferSubSamplingTotalBufferSize)
	buf = wire.WriteInt16(buf, c.BufferSubSamplingPreTriggerBufferSize)
	return buf
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func decodeCamConfig(payload []byte) (CamConfig, error) {
	if err := checkLen(payload, 0, 52, "CamConfig"); err != nil {
		return CamConfig{}, err
	}
	read16 := func(off int) (int16, error) { return wire.ReadInt16(payload, off) }
	var out CamConfig
	var err error
	out.DynamicConfig = payload[1] != 0
	if out.ResolutionWidth, err = read16(2); err != nil {
		return CamConfig{}, err
	}
	if out.ResolutionHeight, err = read16(4); err != nil {
		return CamConfig{}, err
	}
	if out.Rotation, err = read16(6); err != nil {
		return CamConfig{}, err
	}
	if out.EV, err = read16(8); err != nil {
		return CamConfig{}, err
	}
	out.Quality = payload[10]
	out.Framerate = payload[11]
	out.StreamingFramerate = payload[12]
	if out.RingbufferPretimeMs, err = read16(13); err != nil {
		return CamConfig{}, err
	}
	if out.RingbufferPosttimeMs, err = read16(15); err != nil {
		return CamConfig{}, err
	}
	out.RawCameraMode = payload[17]
	out.FusionCameraMode = payload[18] != 0
	if out.RawShutterSpeedMax, err = wire.ReadFloat40(payload, 19); err != nil {
		return CamConfig{}, err
	}
	if out.RawEvRoiX, err = read16(24); err != nil {
		return CamConfig{}, err
	}
	if out.RawEvRoiY, err = read16(26); err != nil {
		return CamConfig{}, err
	}
	if out.RawEvRoiWidth, err = read16(28); err != nil {
		return CamConfig{}, err
	}
	if out.RawEvRoiHeight, err = read16(30); err != nil {
		return CamConfig{}, err
	}
	if out.RawXOffset, err = read16(32); err != nil {
		return CamConfig{}, err
	}
	out.RawBin44 = payload[34] != 0
	if out.RawLivePreviewWriteIntervalMs, err = read16(35); err != nil {
		return CamConfig{}, err
	}
	if out.RawYOffset, err = read16(37); err != nil {
		return CamConfig{}, err
	}
	if out.BufferSubSamplingPreTriggerDiv, err = read16(39); err != nil {
		return CamConfig{}, err
	}
	if out.BufferSubSamplingPostTriggerDiv, err = read16(41); err != nil {
		return CamConfig{}, err
	}
	if out.BufferSubSamplingSwitchTimeOffset, err = wire.ReadFloat40(payload, 43); err != nil {
		return CamConfig{}, err
	}
	if out.BufferSubSamplingTotalBufferSize, err = read16(48); err != nil {
		return CamConfig{}, err
	}
	if out.BufferSubSamplingPreTriggerBufferSize, err = read16(50); err != nil {
		return CamConfig{}, err
	}
	return out, nil
}

// CamConfigMsg wraps the device's echo of a camera configuration, type
// 0x82.
type CamConfigMsg struct {
	Config CamConfig
}

func (CamConfigMsg) isMessage() {}

func decodeCamConfigAck(f wire.RawFrame) (CamConfigMsg, error) {
	cfg, err := decodeCamConfig(f.Payload)
	if err != nil {
		return CamConfigMsg{}, err
	}
	return CamConfigMsg{Config: cfg}, nil
}

// CamImageAvail is the per-shot camera image notification (67 bytes long
// form, 2 bytes short form), type 0x84.
type CamImageAvail struct {
	StreamingAvailable  bool
	FusionAvailable     bool
	VideoAvailable      bool
	StreamingTimestamp  string
	FusionTimestamp     string
}

func (CamImageAvail) isMessage() {}

func parseNullPaddedString(data []byte) string {
	end := len(data)
	for i, b := range data {
		if b == 0 {
			end = i
			break
		}
	}
	return string(data[:end])
}

func decodeCamImageAvail(f wire.RawFrame) (CamImageAvail, error) {
	p := f.Payload
	if len(p) == 0 {
		return CamImageAvail{}, wire.PayloadTooShort("CamImageAvail", 1, 0)
	}
	if p[0] == 0x42 {
		if err := checkLen(p, 0, 67, "CamImageAvail(long)"); err != nil {
			return CamImageAvail{}, err
		}
		streamingFlags := p[1]
		fusionFlags := p[2]
		return CamImageAvail{
			StreamingAvailable: streamingFlags&1 != 0,
			FusionAvailable:    fusionFlags&1 != 0,
			VideoAvailable:     fusionFlags&2 != 0,
			StreamingTimestamp: parseNullPaddedString(p[3:35]),
			FusionTimestamp:    parseNullPaddedString(p[35:67]),
		}, nil
	}
	var flags byte
	if len(p) > 1 {
		flags = p[1]
	}
	return CamImageAvail{StreamingAvailable: flags&1 != 0}, nil
}

// SensorActResp is the device certificate response to a sensor activation
// command (PI→App), type 0x89. The raw payload is kept (842-char base64
// certificate).
type SensorActResp struct {
	Payload []byte
}

func (SensorActResp) isMessage() {}
