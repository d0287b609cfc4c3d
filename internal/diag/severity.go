package diag

// Severity ranks a diagnostic. Only SevError fails a render run.
type Severity uint8

const (
	// SevInfo notes something about an entry without affecting output.
	SevInfo Severity = iota
	// SevWarning flags an entry that still rendered.
	SevWarning
	// SevError marks an entry or file that could not be built.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
