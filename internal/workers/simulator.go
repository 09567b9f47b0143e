package workers

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

// vitalRange is an inclusive range a simulated vital drifts within.
type vitalRange struct {
	min, max, step int
}

var (
	heartRateRange = vitalRange{min: 68, max: 82, step: 2}
	spo2Range      = vitalRange{min: 96, max: 99, step: 1}
	respRange      = vitalRange{min: 14, max: 19, step: 1}
)

// next moves cur by at most step and clamps the result to the range.
func (v vitalRange) next(rng *rand.Rand, cur int) int {
	cur += rng.IntN(2*v.step+1) - v.step
	return min(max(cur, v.min), v.max)
}

func (v vitalRange) start(rng *rand.Rand) int {
	return v.min + rng.IntN(v.max-v.min+1)
}

// DeviceSimulator posts plausible bedside readings to a VitaScope server at a
// fixed interval, the way a real monitor device would.
type DeviceSimulator struct {
	api      adapter.VitaScopeAPI
	deviceID string
	interval time.Duration
	count    int

	rng *rand.Rand
	now func() time.Time

	heartRate, spo2, resp int

	logger *logger.Logger
}

// NewDeviceSimulator creates a simulator. count limits the number of readings
// sent; 0 means until the context is cancelled.
func NewDeviceSimulator(api adapter.VitaScopeAPI, deviceID string, interval time.Duration, count int, logger *logger.Logger) *DeviceSimulator {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	return newDeviceSimulator(api, deviceID, interval, count, rng, time.Now, logger)
}

func newDeviceSimulator(api adapter.VitaScopeAPI, deviceID string, interval time.Duration, count int, rng *rand.Rand, now func() time.Time, logger *logger.Logger) *DeviceSimulator {
	return &DeviceSimulator{
		api:       api,
		deviceID:  deviceID,
		interval:  interval,
		count:     count,
		rng:       rng,
		now:       now,
		heartRate: heartRateRange.start(rng),
		spo2:      spo2Range.start(rng),
		resp:      respRange.start(rng),
		logger:    logger,
	}
}

// Run sends the first reading immediately and then one per interval. Failed
// posts are logged and count towards the limit; the device keeps sending.
func (s *DeviceSimulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for sent := 0; s.count == 0 || sent < s.count; sent++ {
		if sent > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
		s.send(ctx)
	}

	s.logger.Info().Int("count", s.count).Msg("simulator finished")
	return nil
}

func (s *DeviceSimulator) send(ctx context.Context) {
	reading := s.nextReading()
	if err := s.api.PostReading(ctx, reading); err != nil {
		s.logger.Warn().Err(err).Str("func", "*DeviceSimulator.send").Msg("error posting reading")
		return
	}

	s.logger.Info().
		Str("device_id", reading.DeviceID).
		Str("heart_rate", reading.HeartRate).
		Str("spo2", reading.SpO2).
		Str("resp", reading.Resp).
		Msg("reading sent")
}

// nextReading advances every vital by a small random step.
func (s *DeviceSimulator) nextReading() models.DeviceReading {
	s.heartRate = heartRateRange.next(s.rng, s.heartRate)
	s.spo2 = spo2Range.next(s.rng, s.spo2)
	s.resp = respRange.next(s.rng, s.resp)

	return models.DeviceReading{
		DeviceID:  s.deviceID,
		HeartRate: strconv.Itoa(s.heartRate),
		SpO2:      strconv.Itoa(s.spo2),
		Resp:      strconv.Itoa(s.resp),
		Timestamp: s.now().Format(models.DeviceTimestampLayout),
	}
}
