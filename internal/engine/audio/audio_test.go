package audio

import (
	"testing"
)

func TestVolumeGain(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
		{-1, -100},
	}

	for _, tt := range tests {
		got := volumeGain(tt.vol)
		if got != tt.want {
			t.Errorf("volumeGain(%v) = %v, want %v", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManagerDefaults(t *testing.T) {
	m := New()
	if m.MasterVolume() != 1.0 {
		t.Errorf("default master volume = %v, want 1.0", m.MasterVolume())
	}
	if m.Muted() {
		t.Error("new manager should not be muted")
	}
	if m.DayWeight() != 1.0 {
		t.Errorf("default day weight = %v, want 1.0", m.DayWeight())
	}
	if m.Initialized() {
		t.Error("new manager should not be initialized")
	}
}

func TestSetMasterVolumeClamps(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	if m.MasterVolume() != 0.5 {
		t.Errorf("master volume = %v, want 0.5", m.MasterVolume())
	}

	m.SetMasterVolume(2.0)
	if m.MasterVolume() != 1.0 {
		t.Errorf("master volume = %v, want 1.0 after clamping", m.MasterVolume())
	}

	m.SetMasterVolume(-1.0)
	if m.MasterVolume() != 0.0 {
		t.Errorf("master volume = %v, want 0.0 after clamping", m.MasterVolume())
	}
}

func TestSetDayWeightClamps(t *testing.T) {
	m := New()

	m.SetDayWeight(0.3)
	if m.DayWeight() != 0.3 {
		t.Errorf("day weight = %v, want 0.3", m.DayWeight())
	}

	m.SetDayWeight(1.5)
	if m.DayWeight() != 1.0 {
		t.Errorf("day weight = %v, want 1.0 after clamping", m.DayWeight())
	}

	m.SetDayWeight(-0.5)
	if m.DayWeight() != 0.0 {
		t.Errorf("day weight = %v, want 0.0 after clamping", m.DayWeight())
	}
}

func TestMute(t *testing.T) {
	m := New()

	m.SetMuted(true)
	if !m.Muted() {
		t.Error("manager should be muted")
	}
	if m.MasterVolume() != 1.0 {
		t.Errorf("mute changed master volume to %v", m.MasterVolume())
	}

	m.SetMuted(false)
	if m.Muted() {
		t.Error("manager should be unmuted")
	}
}

func TestLoadRequiresInit(t *testing.T) {
	m := New()

	if err := m.LoadDay(nil); err == nil {
		t.Error("LoadDay before Init should fail")
	}
	if err := m.LoadNight(nil); err == nil {
		t.Error("LoadNight before Init should fail")
	}
}
