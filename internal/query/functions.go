package query

import (
	"fmt"
	"regexp"

	"github.com/theory/jsonpath/registry"
	"github.com/theory/jsonpath/spec"
)

// newRegistry builds the function table supplied to the expression
// parser: an explicit name to (validator, implementation) registry.
func newRegistry() *registry.Registry {
	reg := registry.New()

	mustRegister(reg, "nvl", validateArgs("nvl", 2), nvlFunc)
	mustRegister(reg, "int", validateArgs("int", 1), intFunc)
	mustRegister(reg, "str", validateArgs("str", 1), strFunc)
	mustRegister(reg, "regex_replace", validateArgs("regex_replace", 3), regexReplaceFunc)

	return reg
}

func mustRegister(reg *registry.Registry, name string, validator func([]spec.FuncExprArg) error, fn func([]spec.PathValue) spec.PathValue) {
	if err := reg.Register(name, spec.FuncValue, validator, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", name, err))
	}
}

// validateArgs checks arity and that every argument can be used as a
// single value.
func validateArgs(name string, arity int) func([]spec.FuncExprArg) error {
	return func(args []spec.FuncExprArg) error {
		if len(args) != arity {
			return fmt.Errorf("%s() expects %d arguments, found %d", name, arity, len(args))
		}
		for i, arg := range args {
			if !arg.ConvertsTo(spec.FuncValue) {
				return fmt.Errorf("%s() argument %d is not a value", name, i+1)
			}
		}
		return nil
	}
}

// nvlFunc returns the second argument when the first is null, the
// idiomatic guard for filtering on possibly-absent fields.
func nvlFunc(args []spec.PathValue) spec.PathValue {
	if value := argValue(args[0]); value != nil {
		return spec.Value(value)
	}
	return spec.Value(argValue(args[1]))
}

// intFunc coerces its argument to an integer, or null when the value
// cannot be coerced. It never fails.
func intFunc(args []spec.PathValue) spec.PathValue {
	value, ok := toInt(argValue(args[0]))
	if !ok {
		return spec.Value(nil)
	}
	return spec.Value(value)
}

// strFunc stringifies non-null values; null passes through unchanged.
func strFunc(args []spec.PathValue) spec.PathValue {
	value := argValue(args[0])
	if value == nil {
		return spec.Value(nil)
	}
	return spec.Value(toString(value))
}

// regexReplaceFunc substitutes pattern matches in its third argument.
// A null value or an invalid pattern leaves the value unchanged.
func regexReplaceFunc(args []spec.PathValue) spec.PathValue {
	pattern, okPattern := argValue(args[0]).(string)
	replacement, okReplacement := argValue(args[1]).(string)
	value := argValue(args[2])

	if value == nil {
		return spec.Value(nil)
	}
	text, okText := value.(string)
	if !okPattern || !okReplacement || !okText {
		return spec.Value(value)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return spec.Value(text)
	}
	return spec.Value(re.ReplaceAllString(text, replacement))
}

// argValue unwraps a function argument into a plain value. Singular
// queries arrive as value types; node lists contribute their first
// node, matching how absent fields surface as null.
func argValue(pv spec.PathValue) any {
	switch current := pv.(type) {
	case *spec.ValueType:
		if current == nil {
			return nil
		}
		return current.Value()
	case spec.NodesType:
		if len(current) == 0 {
			return nil
		}
		return current[0]
	default:
		return nil
	}
}
