package protocol

import (
	"strings"

	"github.com/divotmaker/ironsight/wire"
)

// pkScale converts raw INT24 antenna peak samples to their displayed
// units. Matches the device's own normalization of a 23-bit fixed-point
// fraction against a 10000-unit full scale.
const pkScale = 10000.0 / float64(int64(1)<<23)

// FlightResult is the primary ball flight result (158 bytes), one per
// shot. Type 0xD4.
type FlightResult struct {
	Total                   int32
	TrackTime               float64
	StartPosition           [3]float64
	LaunchSpeed             float64
	LaunchAzimuth           float64
	LaunchElevation         float64
	CarryDistance           float64
	FlightTime              float64
	MaxHeight               float64
	LandingPosition         [3]float64
	BackspinRPM             int32
	SidespinRPM             int32
	RiflespinRPM            int32
	LandingSpinRPM          [3]int32
	LandingVelocity         [3]float64
	TotalDistance           float64
	RollDistance            float64
	FinalPosition           [3]float64
	ClubheadSpeed           float64
	ClubStrikeDirection     float64
	ClubAttackAngle         float64
	ClubheadSpeedPost       float64
	ClubSwingPlaneTilt      float64
	ClubSwingPlaneRotation  float64
	ClubEffectiveLoft       float64
	ClubFaceAngle           float64
	PolyScale               int32
	PolyX                   [5]float64
	PolyY                   [5]float64
	PolyZ                   [5]float64
}

func (FlightResult) isMessage() {}

func decodeFlightResult(f wire.RawFrame) (FlightResult, error) {
	p := f.Payload
	if err := checkLen(p, 0, 157, "FlightResult"); err != nil {
		return FlightResult{}, err
	}

	polyScale, err := wire.ReadInt24(p, 109)
	if err != nil {
		return FlightResult{}, err
	}
	ps := float64(1.0)
	if polyScale != 0 {
		ps = float64(polyScale)
	}

	var out FlightResult
	for i := 0; i < 5; i++ {
		x, err := wire.ReadInt24(p, 112+i*3)
		if err != nil {
			return FlightResult{}, err
		}
		y, err := wire.ReadInt24(p, 127+i*3)
		if err != nil {
			return FlightResult{}, err
		}
		z, err := wire.ReadInt24(p, 142+i*3)
		if err != nil {
			return FlightResult{}, err
		}
		out.PolyX[i] = float64(x) / ps
		out.PolyY[i] = float64(y) / ps
		out.PolyZ[i] = float64(z) / ps
	}

	scaled := func(off int) (float64, error) { return wire.ReadInt24Scaled(p, off, 1000.0) }
	raw24 := func(off int) (int32, error) { return wire.ReadInt24(p, off) }

	var e error
	must := func(v float64, err error) float64 {
		if err != nil && e == nil {
			e = err
		}
		return v
	}
	mustI := func(v int32, err error) int32 {
		if err != nil && e == nil {
			e = err
		}
		return v
	}

	out.Total = mustI(raw24(1))
	out.TrackTime = must(scaled(4))
	out.StartPosition = [3]float64{must(scaled(7)), must(scaled(10)), must(scaled(13))}
	out.LaunchSpeed = must(scaled(16))
	out.LaunchAzimuth = must(scaled(19))
	out.LaunchElevation = must(scaled(22))
	out.CarryDistance = must(scaled(25))
	out.FlightTime = must(scaled(28))
	out.MaxHeight = must(scaled(31))
	out.LandingPosition = [3]float64{must(scaled(34)), must(scaled(37)), must(scaled(40))}
	out.BackspinRPM = mustI(raw24(43))
	out.SidespinRPM = mustI(raw24(46))
	out.RiflespinRPM = mustI(raw24(49))
	out.LandingSpinRPM = [3]int32{mustI(raw24(52)), mustI(raw24(55)), mustI(raw24(58))}
	out.LandingVelocity = [3]float64{must(scaled(61)), must(scaled(64)), must(scaled(67))}
	out.TotalDistance = must(scaled(70))
	out.RollDistance = must(scaled(73))
	out.FinalPosition = [3]float64{must(scaled(76)), must(scaled(79)), must(scaled(82))}
	out.ClubheadSpeed = must(scaled(85))
	out.ClubStrikeDirection = must(scaled(88))
	out.ClubAttackAngle = must(scaled(91))
	out.ClubheadSpeedPost = must(scaled(94))
	out.ClubSwingPlaneTilt = must(scaled(97))
	out.ClubSwingPlaneRotation = must(scaled(100))
	out.ClubEffectiveLoft = must(scaled(103))
	out.ClubFaceAngle = must(scaled(106))
	if e != nil {
		return FlightResult{}, e
	}
	out.PolyScale = polyScale
	return out, nil
}

// FlightResultV1 is the early/partial flight result (94 bytes), sent
// before FlightResult. Type 0xE8.
type FlightResultV1 struct {
	Total               int32
	ClubVelocity        float64
	BallVelocity        float64
	FlightTime          float64
	Distance            float64
	Height              float64
	Lateral             float64
	Elevation           float64
	Azimuth             float64
	TrackedTime         float64
	Drag                float64
	BackspinRPM         int32
	SidespinRPM         int32
	Acceleration        float64
	ClubStrikeDirection float64
	PolyScale           int32
	PolyX               [5]float64
	PolyY               [5]float64
	PolyZ               [5]float64
}

func (FlightResultV1) isMessage() {}

func decodeFlightResultV1(f wire.RawFrame) (FlightResultV1, error) {
	p := f.Payload
	if err := checkLen(p, 0, 94, "FlightResultV1"); err != nil {
		return FlightResultV1{}, err
	}

	polyScale, err := wire.ReadInt24(p, 46)
	if err != nil {
		return FlightResultV1{}, err
	}
	ps := float64(1.0)
	if polyScale != 0 {
		ps = float64(polyScale)
		if ps < 1.0 {
			ps = 1.0
		}
	}

	var out FlightResultV1
	for i := 0; i < 5; i++ {
		x, err := wire.ReadInt24(p, 49+i*3)
		if err != nil {
			return FlightResultV1{}, err
		}
		y, err := wire.ReadInt24(p, 64+i*3)
		if err != nil {
			return FlightResultV1{}, err
		}
		z, err := wire.ReadInt24(p, 79+i*3)
		if err != nil {
			return FlightResultV1{}, err
		}
		out.PolyX[i] = float64(x) / ps
		out.PolyY[i] = float64(y) / ps
		out.PolyZ[i] = float64(z) / ps
	}

	var e error
	scaled := func(off int, scale float64) float64 {
		v, err := wire.ReadInt24Scaled(p, off, scale)
		if err != nil && e == nil {
			e = err
		}
		return v
	}
	raw24 := func(off int) int32 {
		v, err := wire.ReadInt24(p, off)
		if err != nil && e == nil {
			e = err
		}
		return v
	}

	out.Total = raw24(1)
	out.ClubVelocity = scaled(4, 1000.0)
	out.BallVelocity = scaled(7, 1000.0)
	out.FlightTime = scaled(10, 1000.0)
	out.Distance = scaled(13, 1000.0)
	out.Height = scaled(16, 1000.0)
	out.Lateral = scaled(19, 1000.0)
	out.Elevation = scaled(22, 1000.0)
	out.Azimuth = scaled(25, 1000.0)
	out.TrackedTime = scaled(28, 1000.0)
	out.Drag = scaled(31, 1_000_000.0)
	out.BackspinRPM = raw24(34)
	out.SidespinRPM = raw24(37)
	out.Acceleration = scaled(40, 1000.0)
	out.ClubStrikeDirection = scaled(43, 1000.0)
	if e != nil {
		return FlightResultV1{}, e
	}
	out.PolyScale = polyScale
	return out, nil
}

// ClubResult is the club head measurement set (167+ bytes), sent twice per
// shot. Type 0xED.
type ClubResult struct {
	NumClubPrcPoints       byte
	Flags                  int32
	PreClubSpeed           float64
	PostClubSpeed          float64
	StrikeDirection        float64
	AttackAngle            float64
	FaceAngle              float64
	DynamicLoft            float64
	SmashFactor            float64
	DispersionCorrection   float64
	SwingPlaneHorizontal   float64
	SwingPlaneVertical     float64
	ClubAzimuth            float64
	ClubElevation          float64
	ClubOffset             float64
	ClubHeight             float64
	PolyScale              int32
	// PolyCoeffs holds 12 three-coefficient arrays in order: PreV, PstV,
	// PreX, PstX, PreY, PstY, PreZ, PstZ, PreYX, PstYX, PreZX, PstZX.
	PolyCoeffs             [12][3]float64
	PreImpactTime          float64
	PostImpactTime         float64
	ClubToBallTime         float64
}

func (ClubResult) isMessage() {}

func decodeClubResult(f wire.RawFrame) (ClubResult, error) {
	p := f.Payload
	if err := checkLen(p, 0, 167, "ClubResult"); err != nil {
		return ClubResult{}, err
	}

	polyScale, err := wire.ReadInt24(p, 47)
	if err != nil {
		return ClubResult{}, err
	}
	ps := float64(1.0)
	if polyScale != 0 {
		ps = float64(polyScale)
	}

	var out ClubResult
	for arr := 0; arr < 12; arr++ {
		for coeff := 0; coeff < 3; coeff++ {
			offset := 50 + arr*9 + coeff*3
			v, err := wire.ReadInt24(p, offset)
			if err != nil {
				return ClubResult{}, err
			}
			out.PolyCoeffs[arr][coeff] = float64(v) / ps
		}
	}

	var e error
	scaled := func(off int, scale float64) float64 {
		v, err := wire.ReadInt24Scaled(p, off, scale)
		if err != nil && e == nil {
			e = err
		}
		return v
	}

	out.NumClubPrcPoints = p[1]
	flags, err := wire.ReadInt24(p, 2)
	if err != nil {
		return ClubResult{}, err
	}
	out.Flags = flags
	out.PreClubSpeed = scaled(5, 100.0)
	out.PostClubSpeed = scaled(8, 100.0)
	out.StrikeDirection = scaled(11, 100.0)
	out.AttackAngle = scaled(14, 100.0)
	out.FaceAngle = scaled(17, 100.0)
	out.DynamicLoft = scaled(20, 100.0)
	out.SmashFactor = scaled(23, 1000.0)
	out.DispersionCorrection = scaled(26, 1000.0)
	out.SwingPlaneHorizontal = scaled(29, 100.0)
	out.SwingPlaneVertical = scaled(32, 100.0)
	out.ClubAzimuth = scaled(35, 100.0)
	out.ClubElevation = scaled(38, 100.0)
	out.ClubOffset = scaled(41, 1000.0)
	out.ClubHeight = scaled(44, 1000.0)
	out.PreImpactTime = scaled(158, 100.0)
	out.PostImpactTime = scaled(161, 100.0)
	out.ClubToBallTime = scaled(164, 100.0)
	if e != nil {
		return ClubResult{}, e
	}
	out.PolyScale = polyScale
	return out, nil
}

// AntennaElement is a single antenna array sample (7 bytes) within a
// SpinResult.
type AntennaElement struct {
	SpinRPM int16
	Peak    float64
	SNR     int16
}

// SpinResult is the radar spin measurement set (138 bytes), one per shot.
// Type 0xEF.
type SpinResult struct {
	Version              byte
	AntennaData          [5][3]AntennaElement
	PmSpinRaw            int16
	PmSpinFinal          int16
	PmSpinConfidence     int16
	LiftSpin             int16
	SpinValidateExpected int16
	SpinValidateLow      int16
	SpinValidateHigh     int16
	SpinValidateScaling  int16
	SpinMethod           byte
	SpinFlags            int32
	LaunchSpin           int16
	AmSpin               int16
	PmSpin               int16
	SpinAxis             float64
	AodSpin              int16
	PllSpin              int16
}

func (SpinResult) isMessage() {}

func decodeSpinResult(f wire.RawFrame) (SpinResult, error) {
	p := f.Payload
	if err := checkLen(p, 0, 138, "SpinResult"); err != nil {
		return SpinResult{}, err
	}

	var out SpinResult
	out.Version = p[0]
	for group := 0; group < 5; group++ {
		for bin := 0; bin < 3; bin++ {
			base := 1 + (group*3+bin)*7
			spin, err := wire.ReadInt16(p, base)
			if err != nil {
				return SpinResult{}, err
			}
			peak, err := wire.ReadInt24Scaled(p, base+2, 1000.0)
			if err != nil {
				return SpinResult{}, err
			}
			snr, err := wire.ReadInt16(p, base+5)
			if err != nil {
				return SpinResult{}, err
			}
			out.AntennaData[group][bin] = AntennaElement{SpinRPM: spin, Peak: peak, SNR: snr}
		}
	}

	var e error
	i16 := func(off int) int16 {
		v, err := wire.ReadInt16(p, off)
		if err != nil && e == nil {
			e = err
		}
		return v
	}
	i16scaled := func(off int, scale float64) float64 {
		v, err := wire.ReadInt16Scaled(p, off, scale)
		if err != nil && e == nil {
			e = err
		}
		return v
	}

	out.PmSpinRaw = i16(106)
	out.PmSpinFinal = i16(108)
	out.PmSpinConfidence = i16(110)
	out.LiftSpin = i16(112)
	out.SpinValidateExpected = i16(114)
	out.SpinValidateLow = i16(116)
	out.SpinValidateHigh = i16(118)
	out.SpinValidateScaling = i16(120)
	out.SpinMethod = p[122]
	spinFlags, err := wire.ReadInt24(p, 123)
	if err != nil {
		return SpinResult{}, err
	}
	out.SpinFlags = spinFlags
	out.LaunchSpin = i16(126)
	out.AmSpin = i16(128)
	out.PmSpin = i16(130)
	out.SpinAxis = i16scaled(132, 10.0)
	out.AodSpin = i16(134)
	out.PllSpin = i16(136)
	if e != nil {
		return SpinResult{}, e
	}
	return out, nil
}

// SpeedProfile is the club head speed profile (172 bytes), one per shot.
// Type 0xD9. The device occasionally sends a short stub when no speed
// data is available, in which case Speeds is empty.
type SpeedProfile struct {
	Flags        byte
	NumPre       byte
	NumPost      byte
	ScaleFactor  int32
	TimeInterval float64
	Speeds       []float64
}

func (SpeedProfile) isMessage() {}

func decodeSpeedProfile(f wire.RawFrame) (SpeedProfile, error) {
	p := f.Payload
	if len(p) < 12 {
		var flags byte
		if len(p) > 1 {
			flags = p[1]
		}
		return SpeedProfile{Flags: flags}, nil
	}

	flags := p[1]
	numPre := p[2]
	numPost := p[3]
	scaleFactor, err := wire.ReadInt24(p, 4)
	if err != nil {
		return SpeedProfile{}, err
	}
	timeInterval, err := wire.ReadFloat40(p, 7)
	if err != nil {
		return SpeedProfile{}, err
	}

	sf := float64(1.0)
	if scaleFactor != 0 {
		sf = float64(scaleFactor)
	}

	numSamples := (len(p) - 12) / 2
	speeds := make([]float64, 0, numSamples)
	for i := 0; i < numSamples; i++ {
		raw, err := wire.ReadInt16(p, 12+i*2)
		if err != nil {
			return SpeedProfile{}, err
		}
		speeds = append(speeds, float64(raw)/sf)
	}

	return SpeedProfile{
		Flags:        flags,
		NumPre:       numPre,
		NumPost:      numPost,
		ScaleFactor:  scaleFactor,
		TimeInterval: timeInterval,
		Speeds:       speeds,
	}, nil
}

// TrackingStatus is radar tracking metadata (82 bytes), sent five times
// per shot across three processing phases. Type 0xE9.
type TrackingStatus struct {
	State               byte
	Flags               byte
	PreTrigBufStart     uint32
	ClubImpactIdx       uint32
	TriggerIdx          uint32
	RadarCal1           uint32
	RadarCal2           uint32
	RadarCalAvr         uint16
	ProcessingIteration byte
	ResultQuality       byte
	DetectionSubtype    byte
	PrcTrackingCount    byte
	RadarMeasurement    uint16
	TriggerFlags        byte
	EventCounter        uint16
	RadarBaseline       int32
	TrackMeasure        [3]int32
	TrackMeasure4       uint16
}

func (TrackingStatus) isMessage() {}

func decodeTrackingStatus(f wire.RawFrame) (TrackingStatus, error) {
	p := f.Payload
	if err := checkLen(p, 0, 82, "TrackingStatus"); err != nil {
		return TrackingStatus{}, err
	}

	var e error
	u24 := func(off int) uint32 {
		v, err := wire.ReadUint24(p, off)
		if err != nil && e == nil {
			e = err
		}
		return v
	}
	u16 := func(off int) uint16 {
		v, err := wire.ReadUint16(p, off)
		if err != nil && e == nil {
			e = err
		}
		return v
	}
	i24 := func(off int) int32 {
		v, err := wire.ReadInt24(p, off)
		if err != nil && e == nil {
			e = err
		}
		return v
	}

	out := TrackingStatus{
		State:               p[1],
		Flags:               p[2],
		PreTrigBufStart:     u24(22),
		ClubImpactIdx:       u24(25),
		TriggerIdx:          u24(28),
		RadarCal1:           u24(32),
		RadarCal2:           u24(35),
		RadarCalAvr:         u16(38),
		ProcessingIteration: p[47],
		ResultQuality:       p[48],
		DetectionSubtype:    p[51],
		PrcTrackingCount:    p[54],
		RadarMeasurement:    u16(56),
		TriggerFlags:        p[59],
		EventCounter:        u16(62),
		RadarBaseline:       i24(67),
		TrackMeasure:        [3]int32{i24(70), i24(73), i24(76)},
		TrackMeasure4:       u16(80),
	}
	if e != nil {
		return TrackingStatus{}, e
	}
	return out, nil
}

// PrcPoint is a single ball radar tracking point (60-byte stride).
type PrcPoint struct {
	Index   int16
	Peak    int16
	SNR     int32
	BufIdx  int16
	Flags   byte
	Time    int32
	N       float64
	Az      float64
	El      float64
	Vel     float64
	Dist    float64
	SyncIdx int32
	SyncBuf int32
	Az1     float64
	Az2     float64
	Az3     float64
	El1     float64
	El2     float64
	Pk      [6]float64
}

// PrcData is raw ball radar tracking data, variable length. Type 0xEC.
type PrcData struct {
	Sequence int16
	Points   []PrcPoint
}

func (PrcData) isMessage() {}

func decodePrcData(f wire.RawFrame) (PrcData, error) {
	p := f.Payload
	if err := checkLen(p, 0, 4, "PrcData"); err != nil {
		return PrcData{}, err
	}

	header := int(p[0])
	sequence, err := wire.ReadInt16(p, 1)
	if err != nil {
		return PrcData{}, err
	}
	subCount := int(p[3])

	if header < 3 || (header-3)%60 != 0 {
		return PrcData{Sequence: sequence}, nil
	}
	const stride = 60

	points := make([]PrcPoint, 0, subCount)
	for i := 0; i < subCount; i++ {
		base := 4 + i*stride
		if base+stride > len(p) {
			break
		}
		d := p[base:]

		var pk [6]float64
		for j := 0; j < 6; j++ {
			v, err := wire.ReadInt24(d, 42+j*3)
			if err != nil {
				return PrcData{}, err
			}
			pk[j] = float64(v) * pkScale
		}

		index, err := wire.ReadInt16(d, 0)
		if err != nil {
			return PrcData{}, err
		}
		peak, err := wire.ReadInt16(d, 2)
		if err != nil {
			return PrcData{}, err
		}
		snr, err := wire.ReadInt24(d, 4)
		if err != nil {
			return PrcData{}, err
		}
		bufIdx, err := wire.ReadInt16(d, 7)
		if err != nil {
			return PrcData{}, err
		}
		timeVal, err := wire.ReadInt24(d, 10)
		if err != nil {
			return PrcData{}, err
		}
		n, err := wire.ReadInt24Scaled(d, 13, 100_000.0)
		if err != nil {
			return PrcData{}, err
		}
		az, err := wire.ReadInt16Scaled(d, 16, 100.0)
		if err != nil {
			return PrcData{}, err
		}
		el, err := wire.ReadInt16Scaled(d, 18, 100.0)
		if err != nil {
			return PrcData{}, err
		}
		vel, err := wire.ReadInt24Scaled(d, 20, 100.0)
		if err != nil {
			return PrcData{}, err
		}
		dist, err := wire.ReadInt24Scaled(d, 23, 1000.0)
		if err != nil {
			return PrcData{}, err
		}
		syncIdx, err := wire.ReadInt24(d, 26)
		if err != nil {
			return PrcData{}, err
		}
		syncBuf, err := wire.ReadInt24(d, 29)
		if err != nil {
			return PrcData{}, err
		}
		az1, err := wire.ReadInt16Scaled(d, 32, 100.0)
		if err != nil {
			return PrcData{}, err
		}
		az2, err := wire.ReadInt16Scaled(d, 34, 100.0)
		if err != nil {
			return PrcData{}, err
		}
		az3, err := wire.ReadInt16Scaled(d, 36, 100.0)
		if err != nil {
			return PrcData{}, err
		}
		el1, err := wire.ReadInt16Scaled(d, 38, 100.0)
		if err != nil {
			return PrcData{}, err
		}
		el2, err := wire.ReadInt16Scaled(d, 40, 100.0)
		if err != nil {
			return PrcData{}, err
		}

		points = append(points, PrcPoint{
			Index: index, Peak: peak, SNR: snr, BufIdx: bufIdx, Flags: d[9],
			Time: timeVal, N: n, Az: az, El: el, Vel: vel, Dist: dist,
			SyncIdx: syncIdx, SyncBuf: syncBuf,
			Az1: az1, Az2: az2, Az3: az3, El1: el1, El2: el2, Pk: pk,
		})
	}

	return PrcData{Sequence: sequence, Points: points}, nil
}

// ClubPrcPoint is a single club head radar tracking point (76-byte
// stride).
type ClubPrcPoint struct {
	Index   int16
	BufOfs  int16
	Peak    int16
	SNR     int32
	BufIdx  int16
	Time    int32
	N       float64
	Az      float64
	El      float64
	Vel     float64
	Vel2    float64
	Dist    float64
	F30     float64
	F33     float64
	Version byte
	F39     int32
	F42     int32
	F45     float64
	Az1     float64
	Az2     float64
	Az3     float64
	El1     float64
	El2     float64
	Pk      [6]float64
}

// ClubPrc is raw club head radar tracking data, paginated. Type 0xEE.
type ClubPrc struct {
	Points []ClubPrcPoint
}

func (ClubPrc) isMessage() {}

// EncodeClubPrcPageRequest builds the raw 77-byte CLUB_PRC page request
// (APP→AVR). startIndex is the first record index to fetch; pagination
// advances it by 3 per call. Sent via Connection.SendRaw, not through the
// Command type, since it is not addressed through the ordinary command
// dispatch.
func EncodeClubPrcPageRequest(startIndex uint16) []byte {
	buf := make([]byte, 0, 77)
	buf = append(buf, 0x4C)
	buf = wire.WriteUint16(buf, startIndex)
	for len(buf) < 77 {
		buf = append(buf, 0)
	}
	return buf
}

func decodeClubPrc(f wire.RawFrame) (ClubPrc, error) {
	p := f.Payload
	if len(p) == 0 {
		return ClubPrc{}, nil
	}

	dataLen := int(p[0])
	numRecords := dataLen / 76
	points := make([]ClubPrcPoint, 0, numRecords)

	for i := 0; i < numRecords; i++ {
		base := 1 + i*76
		if base+76 > len(p) {
			break
		}
		d := p[base:]

		var pk [6]float64
		for j := 0; j < 6; j++ {
			v, err := wire.ReadInt24(d, 58+j*3)
			if err != nil {
				return ClubPrc{}, err
			}
			pk[j] = float64(v) * pkScale
		}

		index, err := wire.ReadInt16(d, 0)
		if err != nil {
			return ClubPrc{}, err
		}
		bufOfs, err := wire.ReadInt16(d, 2)
		if err != nil {
			return ClubPrc{}, err
		}
		peak, err := wire.ReadInt16(d, 4)
		if err != nil {
			return ClubPrc{}, err
		}
		snr, err := wire.ReadInt24(d, 6)
		if err != nil {
			return ClubPrc{}, err
		}
		bufIdx, err := wire.ReadInt16(d, 9)
		if err != nil {
			return ClubPrc{}, err
		}
		timeVal, err := wire.ReadInt24(d, 11)
		if err != nil {
			return ClubPrc{}, err
		}
		n, err := wire.ReadInt24Scaled(d, 14, 100_000.0)
		if err != nil {
			return ClubPrc{}, err
		}
		az, err := wire.ReadInt16Scaled(d, 17, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		el, err := wire.ReadInt16Scaled(d, 19, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		vel, err := wire.ReadInt24Scaled(d, 21, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		vel2, err := wire.ReadInt24Scaled(d, 24, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		dist, err := wire.ReadInt24Scaled(d, 27, 1000.0)
		if err != nil {
			return ClubPrc{}, err
		}
		f30, err := wire.ReadInt24Scaled(d, 30, 1000.0)
		if err != nil {
			return ClubPrc{}, err
		}
		f33, err := wire.ReadInt24Scaled(d, 33, 1000.0)
		if err != nil {
			return ClubPrc{}, err
		}
		f39, err := wire.ReadInt24(d, 39)
		if err != nil {
			return ClubPrc{}, err
		}
		f42, err := wire.ReadInt24(d, 42)
		if err != nil {
			return ClubPrc{}, err
		}
		f45, err := wire.ReadInt24Scaled(d, 45, 1000.0)
		if err != nil {
			return ClubPrc{}, err
		}
		az1, err := wire.ReadInt16Scaled(d, 48, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		az2, err := wire.ReadInt16Scaled(d, 50, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		az3, err := wire.ReadInt16Scaled(d, 52, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		el1, err := wire.ReadInt16Scaled(d, 54, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}
		el2, err := wire.ReadInt16Scaled(d, 56, 100.0)
		if err != nil {
			return ClubPrc{}, err
		}

		points = append(points, ClubPrcPoint{
			Index: index, BufOfs: bufOfs, Peak: peak, SNR: snr, BufIdx: bufIdx,
			Time: timeVal, N: n, Az: az, El: el, Vel: vel, Vel2: vel2, Dist: dist,
			F30: f30, F33: f33, Version: d[38], F39: f39, F42: f42, F45: f45,
			Az1: az1, Az2: az2, Az3: az3, El1: el1, El2: el2, Pk: pk,
		})
	}

	return ClubPrc{Points: points}, nil
}

// ShotText is shot processing state text ("BALL TRIGGER", "Clubimpact",
// "PROCESSED", "IDLE"), type 0xE5.
type ShotText struct {
	Text string
}

func (ShotText) isMessage() {}

func decodeShotText(f wire.RawFrame) (ShotText, error) {
	return ShotText{Text: trimControlBytes(f.Payload)}, nil
}

// IsProcessed reports whether this is a "PROCESSED" state message.
func (t ShotText) IsProcessed() bool { return strings.Contains(t.Text, "PROCESSED") }

// IsIdle reports whether this is an "IDLE" state message.
func (t ShotText) IsIdle() bool { return strings.Contains(t.Text, "IDLE") }

// IsTrigger reports whether this is a "BALL TRIGGER" state message.
func (t ShotText) IsTrigger() bool { return strings.Contains(t.Text, "BALL TRIGGER") }
