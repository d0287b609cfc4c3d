// Package style exposes the color-mode expressions conditional rendering
// depends on.
package style

import (
	"rxvar/internal/types"
	"rxvar/internal/vardata"
	"rxvar/internal/vars"
)

const (
	LightColorMode  = "light"
	DarkColorMode   = "dark"
	SystemColorMode = "system"
)

// ContextsPath is the generated module exporting the React contexts.
const ContextsPath = "$/utils/context"

var colorModeData = vardata.Merge(
	vardata.Imports("react", "useContext"),
	vardata.Imports(ContextsPath, "ColorModeContext"),
	vardata.Hooks("const { resolvedColorMode } = useContext(ColorModeContext)"),
)

// ResolvedColorMode evaluates to the active color mode ("light" or "dark").
var ResolvedColorMode vars.Var = vars.New("resolvedColorMode", types.String(), colorModeData)

// IsLightMode is true when the resolved color mode is light.
func IsLightMode() vars.Var {
	return vars.Eq(ResolvedColorMode, vars.MustLift(LightColorMode))
}
