package vars

import "rxvar/internal/types"

// Script builtins shared by generated expressions.
var (
	JSONStringify = NewStringFunction(
		"JSON.stringify",
		types.Callable([]types.Type{types.Any()}, types.String()),
		nil,
	)
	ArrayIsArray = NewStringFunction(
		"Array.isArray",
		types.Callable([]types.Type{types.Any()}, types.Bool()),
		nil,
	)
	PrototypeToString = NewStringFunction(
		"((__to_string) => __to_string.toString())",
		types.Callable([]types.Type{types.Any()}, types.String()),
		nil,
	)
)
