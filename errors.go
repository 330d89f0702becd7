package img2term

import "fmt"

// ErrorKind enumerates the failure classes of the rendering pipeline.
// The set is closed: format sniffing either cannot identify a codec or
// cannot read the file, and decode failures fold into the latter.
type ErrorKind int

const (
	// FormatGuessFailed means neither the extension nor the magic
	// bytes identified a supported format.
	FormatGuessFailed ErrorKind = iota

	// OpenFailed means the file could not be opened or decoded.
	OpenFailed
)

// Error is a terminal pipeline failure naming the offending file. No
// partial output precedes it and nothing retries it.
type Error struct {
	Kind ErrorKind
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case FormatGuessFailed:
		return fmt.Sprintf("Failed to guess format of \"%s\".", e.Name)
	case OpenFailed:
		return fmt.Sprintf("Failed to open image file \"%s\".", e.Name)
	}
	return fmt.Sprintf("Unknown error for \"%s\".", e.Name)
}

// ExitCode returns the process exit code associated with the error kind.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case FormatGuessFailed:
		return 1
	case OpenFailed:
		return 2
	}
	return 1
}
