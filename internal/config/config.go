// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	DayNight DayNightConfig `yaml:"daynight"`
	Player   PlayerConfig   `yaml:"player"`
	Camera   CameraConfig   `yaml:"camera"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// GraphicsConfig holds rendering settings.
type GraphicsConfig struct {
	FPSLimit int  `yaml:"fps_limit"`
	ShowGrid bool `yaml:"show_grid"`
	Shadows  bool `yaml:"shadows"`
	ShowFPS  bool `yaml:"show_fps"`
}

// SceneConfig holds model loading settings.
type SceneConfig struct {
	Model string `yaml:"model"` // path to an OBJ file, empty for grid only
	Watch bool   `yaml:"watch"` // reload the model when the file changes
}

// DayNightConfig holds day/night cycle settings. Time is the hour of day
// in [0,24); TimeSpeed is simulated seconds per real second.
type DayNightConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Time         float32 `yaml:"time"`
	TimeSpeed    float32 `yaml:"time_speed"`
	SunIntensity float32 `yaml:"sun_intensity"`
	SunDistance  float32 `yaml:"sun_distance"`
	OrbitPitch   float32 `yaml:"orbit_pitch"` // radians
	OrbitYaw     float32 `yaml:"orbit_yaw"`
	OrbitRoll    float32 `yaml:"orbit_roll"`
}

// PlayerConfig holds locomotion settings.
type PlayerConfig struct {
	Scale       float32 `yaml:"scale"`
	EyeHeight   float32 `yaml:"eye_height"`
	Speed       float32 `yaml:"speed"`
	JumpForce   float32 `yaml:"jump_force"`
	Gravity     float32 `yaml:"gravity"`
	GroundLevel float32 `yaml:"ground_level"`
}

// CameraConfig holds camera settings. FOV is in degrees.
type CameraConfig struct {
	Mode        string  `yaml:"mode"` // first, third or free
	Sensitivity float32 `yaml:"sensitivity"`
	Distance    float32 `yaml:"distance"`
	Height      float32 `yaml:"height"`
	FOV         float32 `yaml:"fov"`
}

// AudioConfig holds ambience settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	Muted        bool    `yaml:"muted"`
	DaySound     string  `yaml:"day_sound"`
	NightSound   string  `yaml:"night_sound"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Graphics: GraphicsConfig{
			FPSLimit: 0,
			ShowGrid: true,
			Shadows:  false,
			ShowFPS:  false,
		},
		Scene: SceneConfig{
			Model: "",
			Watch: true,
		},
		DayNight: DayNightConfig{
			Enabled:      true,
			Time:         12.0,
			TimeSpeed:    10.0,
			SunIntensity: 1.0,
			SunDistance:  50.0,
		},
		Player: PlayerConfig{
			Scale:       1.0,
			EyeHeight:   1.7,
			Speed:       5.0,
			JumpForce:   8.0,
			Gravity:     -20.0,
			GroundLevel: 0.0,
		},
		Camera: CameraConfig{
			Mode:        "first",
			Sensitivity: 0.0025,
			Distance:    4.0,
			Height:      2.0,
			FOV:         60.0,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
