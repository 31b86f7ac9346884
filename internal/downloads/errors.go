package downloads

import "fmt"

// BatchAlreadyRunningError rejects a start while another batch is in flight.
type BatchAlreadyRunningError struct {
	BatchID string
}

func (e *BatchAlreadyRunningError) Error() string {
	return fmt.Sprintf("batch %s is already running", e.BatchID)
}

// OutputDirError means the download directory is missing or not writable. No download was started.
type OutputDirError struct {
	Dir string
	Err error
}

func (e *OutputDirError) Error() string {
	return fmt.Sprintf("download directory %q is unavailable: %v", e.Dir, e.Err)
}

func (e *OutputDirError) Unwrap() error {
	return e.Err
}
