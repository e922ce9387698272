package typeutil

import (
	"fmt"
	"reflect"
)

// TypeOf is a utility that can covert a T type to a package + type name for generic types.
// Types without a package (builtins, unnamed types) are returned as their Go syntax.
func TypeOf[T any]() string {
	return nameOf(reflect.TypeFor[T]())
}

// TypeFor returns the package + type name for the dynamic type of value. A nil
// interface value returns "<nil>".
func TypeFor(value any) string {
	t := reflect.TypeOf(value)
	if t == nil {
		return "<nil>"
	}
	return nameOf(t)
}

func nameOf(t reflect.Type) string {
	var prefix string

	// pointer types do not carry the adequate type information, so we need to extract the
	// underlying types until we reach the non-pointer type, we prepend a * each depth
	for t != nil && t.Kind() == reflect.Pointer {
		prefix += "*"
		t = t.Elem()
	}

	// this should not be possible, but in the event that it does, we want to be loud about it
	if t == nil {
		panic("failed to locate non-pointer type")
	}

	if t.PkgPath() == "" || t.Name() == "" {
		return prefix + t.String()
	}

	// combine the prefix, package path, and the type name
	return fmt.Sprintf("%s%s/%s", prefix, t.PkgPath(), t.Name())
}
