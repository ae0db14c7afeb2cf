package ingest

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields that were missing or malformed
// in an ingestion request.
type ValidationError struct {
	// MissingFields lists the absent required field names, in form order.
	MissingFields []string
	// Reason carries a non-field-presence problem, such as an unparseable
	// file size value. Empty when only MissingFields applies.
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
	}
	return e.Reason
}

// NotFoundError reports a referenced existing asset that is not present
// in the managed asset directory.
type NotFoundError struct {
	Filename string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("asset %q not found in asset directory", e.Filename)
}

// IOError reports a failure moving the staged upload into the managed
// asset directory.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ThumbnailError reports a failed preview generation. No record is
// committed when thumbnail generation fails.
type ThumbnailError struct {
	SourcePath string
	Err        error
}

func (e *ThumbnailError) Error() string {
	return fmt.Sprintf("generate thumbnail for %s: %v", e.SourcePath, e.Err)
}

func (e *ThumbnailError) Unwrap() error { return e.Err }

// PersistError reports a metadata store rejection of the assembled record.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist image record: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
