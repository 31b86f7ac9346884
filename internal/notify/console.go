package notify

import (
	"time"

	"media-dupes/internal/models"
	"media-dupes/internal/utils/logging"
)

// Console writes to the program log.
type Console struct {
	Nop
	// ShowOutput prints raw download tool output. Otherwise it is only logged at debug level 2.
	ShowOutput bool
}

func (c Console) Log(line string) {
	if c.ShowOutput {
		logging.P("%s", line)
		return
	}
	logging.D(2, "%s", line)
}

func (c Console) Notice(sev models.Severity, msg string, _ time.Duration) {
	switch sev {
	case models.SeveritySuccess:
		logging.S("%s", msg)
	case models.SeverityWarning:
		logging.W("%s", msg)
	case models.SeverityError:
		logging.E("%s", msg)
	default:
		logging.I("%s", msg)
	}
}

func (c Console) Progress(url string, pct float64) {
	logging.I("%5.1f%% %s", pct, url)
}
