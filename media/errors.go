package media

import "fmt"

// InvalidInputError reports an upload that is not a decodable image.
type InvalidInputError struct {
	Name   string
	MIME   string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid image %q", e.Name)
	if e.MIME != "" {
		msg += fmt.Sprintf(" (%s)", e.MIME)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error { return e.Err }
