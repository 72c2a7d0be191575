package export

import (
	"errors"
	"fmt"
)

var (
	// ErrExportInFlight is returned when Export is called while another export runs.
	ErrExportInFlight = errors.New("export: another export is in progress")
	// ErrNoSource is returned for a mockup without a screenshot.
	ErrNoSource = errors.New("export: mockup has no screenshot")
)

// ExportRenderError is a failure of the primary backend. The exporter logs
// it and retries with the fallback backend.
type ExportRenderError struct {
	Backend   string
	AttemptID string
	Err       error
}

func (e *ExportRenderError) Error() string {
	return fmt.Sprintf("export %s: %s backend failed: %v", e.AttemptID, e.Backend, e.Err)
}

func (e *ExportRenderError) Unwrap() error { return e.Err }

// ExportFallbackError is a failure of the fallback backend. It is terminal.
type ExportFallbackError struct {
	Backend   string
	AttemptID string
	Primary   *ExportRenderError
	Err       error
}

func (e *ExportFallbackError) Error() string {
	return fmt.Sprintf("export %s: fallback %s backend failed: %v (primary: %v)", e.AttemptID, e.Backend, e.Err, e.Primary.Err)
}

// Unwrap exposes both the fallback and the primary failure to errors.Is/As.
func (e *ExportFallbackError) Unwrap() []error { return []error{e.Err, e.Primary} }
