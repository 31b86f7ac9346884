package models

// Mode selects the parameter template and post-processing a batch uses.
type Mode string

const (
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

// String returns the string representation of Mode.
func (m Mode) String() string {
	return string(m)
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeAudio, ModeVideo:
		return true
	default:
		return false
	}
}

// ParseMode converts user input to a Mode.
func ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	return m, m.Valid()
}
