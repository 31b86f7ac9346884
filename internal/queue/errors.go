package queue

import "fmt"

// EmptyURLError is returned when the trimmed input is empty.
type EmptyURLError struct{}

func (e *EmptyURLError) Error() string {
	return "url is empty"
}

// InvalidURLError is returned when the input does not look like a URL.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("url %q is not valid", e.URL)
}
