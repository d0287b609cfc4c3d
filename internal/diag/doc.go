// Package diag defines the diagnostic model shared by expression building,
// manifest loading, configuration and rendering.
//
// Expression constructors never report through a Bag: they return typed
// errors that implement Coded, so construction stays all-or-nothing. Outer
// layers (the manifest loader, the CLI) convert those errors with FromError
// and collect them in a Bag for deterministic reporting.
//
// Package diag does not perform formatting or IO; the CLI renders diagnostics.
package diag
