package camera

// Mode selects how the rig derives its transform each frame.
type Mode int

const (
	// FirstPerson places the camera at the player's eyes.
	FirstPerson Mode = iota
	// ThirdPerson hangs the camera on a boom behind the player.
	ThirdPerson
	// Free detaches the camera; its position is moved directly by input
	// and the player only mirrors it.
	Free
)

// String returns the name used in config files.
func (m Mode) String() string {
	switch m {
	case ThirdPerson:
		return "third"
	case Free:
		return "free"
	}
	return "first"
}

// ParseMode maps a config name to a Mode. Unknown names report false.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "first":
		return FirstPerson, true
	case "third":
		return ThirdPerson, true
	case "free":
		return Free, true
	}
	return FirstPerson, false
}
