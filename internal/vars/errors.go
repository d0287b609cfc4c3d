package vars

import (
	"fmt"

	"rxvar/internal/diag"
)

// VarValueError reports a malformed call shape (wrong arity or structure).
type VarValueError struct {
	Msg string
}

func (e *VarValueError) Error() string   { return e.Msg }
func (e *VarValueError) Code() diag.Code { return diag.VarValueError }

// VarTypeError reports a value that cannot take part in an expression.
type VarTypeError struct {
	Msg string
}

func (e *VarTypeError) Error() string   { return e.Msg }
func (e *VarTypeError) Code() diag.Code { return diag.VarTypeError }

// ArgumentTypeError reports an argument rejected by a callable's validator.
type ArgumentTypeError struct {
	// Function is the diagnostic name of the callable ("" if unnamed).
	Function string
	// Param is the declared parameter name, "" when only the position is known.
	Param string
	// Index is the zero-based position of the argument.
	Index int
	// Arg is the printed argument.
	Arg string
}

func (e *ArgumentTypeError) Error() string {
	fn := e.Function
	if fn == "" {
		fn = "var operation"
	}
	if e.Param != "" {
		return fmt.Sprintf("Invalid argument %s provided to %s in %s", e.Arg, e.Param, fn)
	}
	return fmt.Sprintf("Invalid argument %s provided to argument %d in %s", e.Arg, e.Index, fn)
}

func (e *ArgumentTypeError) Code() diag.Code { return diag.ArgumentTypeError }

// MatchTypeError reports a match case whose return value does not fit the
// return category fixed by the first case.
type MatchTypeError struct {
	Index    int
	Value    string
	Actual   string
	Expected string
}

func (e *MatchTypeError) Error() string {
	return fmt.Sprintf(
		"Match cases should have the same return types. Case %d with return value `%s` of type %s is not %s",
		e.Index, e.Value, e.Actual, e.Expected,
	)
}

func (e *MatchTypeError) Code() diag.Code { return diag.MatchTypeError }

func valueErrorf(format string, args ...any) error {
	return &VarValueError{Msg: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) error {
	return &VarTypeError{Msg: fmt.Sprintf(format, args...)}
}
