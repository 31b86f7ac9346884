package builder

import "fmt"

// InvalidModeError is returned for any mode other than audio or video.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q: must be %q or %q", e.Mode, "audio", "video")
}
