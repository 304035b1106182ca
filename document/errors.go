package document

import "fmt"

// OpenError reports an unreadable or corrupt input. The job owning the
// document aborts immediately and writes no output.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string { return fmt.Sprintf("open %s: %v", e.Path, e.Err) }
func (e *OpenError) Unwrap() error { return e.Err }

// SaveError reports a failure writing the output document.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string { return fmt.Sprintf("save %s: %v", e.Path, e.Err) }
func (e *SaveError) Unwrap() error { return e.Err }

// ExtractionPermissionError reports that a document's permissions forbid
// text extraction. Word-processor conversion fails with this error; the
// already-saved PDF output remains valid.
type ExtractionPermissionError struct {
	Path string
}

func (e *ExtractionPermissionError) Error() string {
	return fmt.Sprintf("%s: text extraction not allowed", e.Path)
}
