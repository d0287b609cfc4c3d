package diag

import (
	"errors"
	"fmt"
)

type Diagnostic struct {
	Severity Severity
	Code     Code
	// Subject names what the diagnostic is about: a manifest entry, a config
	// file or an expression name.
	Subject string
	Message string
	Notes   []string
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), d.Message)
	}
	return fmt.Sprintf("%s %s %s: %s", d.Severity, d.Code.ID(), d.Subject, d.Message)
}

// Coded is implemented by errors that carry a diagnostic code.
type Coded interface {
	error
	Code() Code
}

// CodeOf returns the code of the first Coded error in err's chain.
func CodeOf(err error) Code {
	var c Coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return UnknownCode
}

// FromError converts an error into an error-severity diagnostic.
func FromError(subject string, err error) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     CodeOf(err),
		Subject:  subject,
		Message:  err.Error(),
	}
}
