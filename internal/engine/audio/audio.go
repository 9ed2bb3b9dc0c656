// Package audio plays the day and night ambience beds. Both loop
// continuously; the manager crossfades between them as the sun rises
// and sets.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the sample rate the speaker runs at. Beds with a
// different rate are resampled on the fly.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager owns the speaker and the two ambience beds. All methods are
// safe for concurrent use. A manager whose Init failed or was never
// called stays inert: loads fail, volume changes are remembered.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	day   *bed
	night *bed

	masterVolume float64
	muted        bool
	dayWeight    float64
}

// bed is one looping ambience stream sitting in the speaker mixer.
type bed struct {
	src    beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// New creates a manager at full volume with the day bed fully weighted.
func New() *Manager {
	return &Manager{
		masterVolume: 1,
		dayWeight:    1,
	}
}

// Init opens the speaker. Safe to call more than once.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	return nil
}

// Close stops both beds and releases the speaker queue.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.day.stop()
	m.night.stop()
	m.day = nil
	m.night = nil
	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// Initialized reports whether the speaker is open.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// LoadDay decodes WAV data and starts it looping as the day bed,
// replacing any previous one.
func (m *Manager) LoadDay(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.startBed(data)
	if err != nil {
		return err
	}
	m.day.stop()
	m.day = b
	m.applyVolumes()
	return nil
}

// LoadNight decodes WAV data and starts it looping as the night bed,
// replacing any previous one.
func (m *Manager) LoadNight(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.startBed(data)
	if err != nil {
		return err
	}
	m.night.stop()
	m.night = b
	m.applyVolumes()
	return nil
}

// SetMasterVolume sets the overall volume (0 to 1).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.applyVolumes()
}

// MasterVolume returns the overall volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.masterVolume
}

// SetMuted silences both beds without touching the volume setting.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.applyVolumes()
}

// Muted reports whether playback is muted.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// SetDayWeight sets the crossfade position: 1 plays only the day bed,
// 0 only the night bed. Values outside [0, 1] are clamped.
func (m *Manager) SetDayWeight(w float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w = clamp(w, 0, 1)
	if math.Abs(w-m.dayWeight) < 1e-3 {
		return
	}
	m.dayWeight = w
	m.applyVolumes()
}

// DayWeight returns the current crossfade position.
func (m *Manager) DayWeight() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dayWeight
}

// startBed decodes, resamples and starts a looping stream at silence.
// Caller holds m.mu.
func (m *Manager) startBed(data []byte) (*bed, error) {
	if !m.initialized {
		return nil, fmt.Errorf("audio not initialized")
	}

	src, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	var stream beep.Streamer = src
	if format.SampleRate != m.sampleRate {
		stream = beep.Resample(4, format.SampleRate, m.sampleRate, src)
	}

	ctrl := &beep.Ctrl{Streamer: &loop{src: src, stream: stream}}
	volume := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Silent:   true,
	}
	speaker.Play(volume)

	return &bed{src: src, ctrl: ctrl, volume: volume}, nil
}

// applyVolumes pushes the current master volume, mute flag and crossfade
// weights into the playing beds. Caller holds m.mu.
func (m *Manager) applyVolumes() {
	if m.day == nil && m.night == nil {
		return
	}

	speaker.Lock()
	m.day.setVolume(m.masterVolume*m.dayWeight, m.muted)
	m.night.setVolume(m.masterVolume*(1-m.dayWeight), m.muted)
	speaker.Unlock()
}

// setVolume adjusts the bed's gain. Caller holds the speaker lock.
func (b *bed) setVolume(vol float64, muted bool) {
	if b == nil {
		return
	}
	if muted || vol <= 0 {
		b.volume.Silent = true
		return
	}
	b.volume.Silent = false
	b.volume.Volume = volumeGain(vol)
}

// stop drains the bed out of the speaker mixer and closes its source.
func (b *bed) stop() {
	if b == nil {
		return
	}
	speaker.Lock()
	b.ctrl.Streamer = nil
	speaker.Unlock()
	b.src.Close()
}

// volumeGain maps a linear 0..1 volume onto the base-2 exponent used by
// effects.Volume, so 0.5 plays at half amplitude.
func volumeGain(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// loop repeats src forever: when the resampled stream drains it seeks
// the source back to the start and keeps filling.
type loop struct {
	src    beep.StreamSeekCloser
	stream beep.Streamer
}

func (l *loop) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.stream.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.src.Seek(0); err != nil {
				return filled, filled > 0
			}
			if n == 0 && l.src.Len() == 0 {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loop) Err() error {
	return l.src.Err()
}
