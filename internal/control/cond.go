package control

import (
	"rxvar/internal/component"
	"rxvar/internal/style"
	"rxvar/internal/types"
	"rxvar/internal/vars"
)

// Cond selects between two values on a condition.
//
// When then is component-like and otherwise is nil (or a nil pointer),
// otherwise defaults to an empty fragment; any other nil otherwise is an
// error. Both branches are
// wrapped in zero-argument arrow functions and the selected one is called
// immediately, so only the taken branch is evaluated:
//
//	((cond ? (() => a) : (() => b))())
func Cond(condition, then, otherwise any) (Result, error) {
	condVar, err := vars.Lift(condition)
	if err != nil {
		return Result{}, err
	}

	if vars.IsNil(otherwise) {
		otherwise = nil
	}
	if component.IsComponentLike(then) && otherwise == nil {
		otherwise = component.Fragment()
	}
	if otherwise == nil {
		return Result{}, &vars.VarValueError{Msg: "For conditional vars, the second argument must be set."}
	}

	c1, err := vars.Lift(then)
	if err != nil {
		return Result{}, err
	}
	c2, err := vars.Lift(otherwise)
	if err != nil {
		return Result{}, err
	}

	thunk1, err := thunk(c1)
	if err != nil {
		return Result{}, err
	}
	thunk2, err := thunk(c2)
	if err != nil {
		return Result{}, err
	}

	selected := vars.Ternary(vars.ToBool(condVar), thunk1, thunk2)
	out, err := vars.AsFunction(selected).Call()
	if err != nil {
		return Result{}, err
	}
	return newResult(out), nil
}

func thunk(body vars.Var) (*vars.ArgsFunction, error) {
	return vars.NewArgsFunction(nil, body, vars.WithType(types.Callable(nil, body.Type())))
}

// ColorModeCond picks light or dark depending on the resolved color mode.
// The same defaulting rules as Cond apply to dark.
func ColorModeCond(light, dark any) (Result, error) {
	return Cond(style.IsLightMode(), light, dark)
}
