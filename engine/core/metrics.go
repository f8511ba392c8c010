package core

import "time"

const AVG_COUNT uint8 = 30

// Metrics is the per-frame profiler: it keeps a rolling frame time average
// and the frames per second of the last full second.
type Metrics struct {
	now func() time.Time
	// zero until the first Update
	lastUpdate time.Time

	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64
	TotalFrames        uint64
}

func NewMetrics() *Metrics {
	return &Metrics{
		now: time.Now,
	}
}

func NewMetricsWithSource(now func() time.Time) *Metrics {
	return &Metrics{
		now: now,
	}
}

// Update is called once at the start of every frame.
func (m *Metrics) Update() {
	now := m.now()
	if !m.lastUpdate.IsZero() {
		m.Record(now.Sub(m.lastUpdate).Seconds())
	}
	m.lastUpdate = now
	m.TotalFrames++
}

// Reset drops the reference time so a pause is not recorded as one long frame.
func (m *Metrics) Reset() {
	m.lastUpdate = time.Time{}
}

// Record accounts one frame that took frameElapsedTime seconds.
func (m *Metrics) Record(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.MStimes[m.FrameAVGCounter] = frameMS
	if m.FrameAVGCounter == AVG_COUNT-1 {
		m.MSavg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.MSavg += m.MStimes[i]
		}
		m.MSavg /= float64(AVG_COUNT)
	}
	m.FrameAVGCounter++
	m.FrameAVGCounter %= AVG_COUNT

	// Calculate Frames per second.
	m.AccumulatedFrameMS += frameMS
	if m.AccumulatedFrameMS > 1000 {
		m.FPS = float64(m.Frames)
		m.AccumulatedFrameMS -= 1000
		m.Frames = 0
	}

	// Count all Frames.
	m.Frames++
}

func (m *Metrics) FrameTime() float64 {
	return m.MSavg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.FPS, m.MSavg
}
