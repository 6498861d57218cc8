package introspect

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// Enumerate walks the runtime type information of a module instance and
// returns one descriptor per exposed operation, in the reflection facility's
// native enumeration order. When excludeBase is true, operations promoted
// from an embedded capability type are omitted; the test is whether the
// declaring type is the instance's most-derived type, not a name heuristic.
//
// A nil instance yields an empty result. Instances routinely originate from
// a failed load, so every entry point here degrades instead of failing.
func Enumerate(instance any, excludeBase bool) []Operation {
	return EnumerateWithTable(instance, excludeBase, nil)
}

// EnumerateWithTable is Enumerate with a self-registered operation table
// overlaid: declared parameter names replace the synthesized ones, and
// declared kinds reclassify dispatchability.
func EnumerateWithTable(instance any, excludeBase bool, table *Table) []Operation {
	if isNilInstance(instance) {
		return nil
	}

	t := reflect.TypeOf(instance)
	var ops []Operation
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if excludeBase && promotedFromEmbedded(t, method.Name) {
			continue
		}
		ops = append(ops, describeMethod(method, table))
	}
	return ops
}

// HasOperation reports whether the instance exposes an operation with that
// exact name, searching the exhaustive (base-inclusive) operation set.
func HasOperation(instance any, name string) bool {
	for _, op := range Enumerate(instance, false) {
		if op.Name == name {
			return true
		}
	}
	return false
}

// TypeName returns the most-derived runtime type name of the instance, with
// pointer indirections stripped. A nil instance yields the empty string.
func TypeName(instance any) string {
	if isNilInstance(instance) {
		return ""
	}
	t := reflect.TypeOf(instance)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// MethodParamTypes returns the reflected parameter types of the named
// operation, excluding the receiver and a host-injected leading
// context.Context. The second result is false when the instance is nil or
// has no such operation.
func MethodParamTypes(instance any, name string) ([]reflect.Type, bool) {
	if isNilInstance(instance) {
		return nil, false
	}
	method, ok := reflect.TypeOf(instance).MethodByName(name)
	if !ok {
		return nil, false
	}

	mt := method.Type
	first := 1
	if mt.NumIn() > first && mt.In(first) == contextType {
		first++
	}

	params := make([]reflect.Type, 0, mt.NumIn()-first)
	for i := first; i < mt.NumIn(); i++ {
		params = append(params, mt.In(i))
	}
	return params, true
}

// describeMethod normalizes one reflected method into an Operation.
func describeMethod(method reflect.Method, table *Table) Operation {
	mt := method.Type
	decl, declared := table.Declaration(method.Name)

	// In(0) is the receiver. A leading context.Context is host-injected and
	// not part of the operation's parameter list.
	first := 1
	if mt.NumIn() > first && mt.In(first) == contextType {
		first++
	}

	var params []Parameter
	var paramTypes []string
	for i := first; i < mt.NumIn(); i++ {
		pos := i - first
		name := fmt.Sprintf("param%d", pos)
		if pos < len(decl.Params) && decl.Params[pos].Name != "" {
			name = decl.Params[pos].Name
		}
		typeName := friendlyTypeName(mt.In(i))
		params = append(params, Parameter{Name: name, Type: typeName})
		paramTypes = append(paramTypes, typeName)
	}

	kind := classify(method, decl, declared)

	return Operation{
		Name:        method.Name,
		Signature:   method.Name + "(" + strings.Join(paramTypes, ",") + ")",
		ReturnType:  returnTypeName(mt),
		IsInvokable: kind != KindAccessor,
		Parameters:  params,
		isHandler:   kind == KindHandler,
	}
}

// classify decides the dispatch category. Table declarations win; otherwise
// a result-less operation with the event-handler naming shape is a handler
// and everything else is an ordinary method. Accessors are only ever
// surfaced through a table declaration.
func classify(method reflect.Method, decl Declaration, declared bool) Kind {
	if declared && decl.Kind != "" {
		return decl.Kind
	}
	if method.Type.NumOut() == 0 && strings.HasPrefix(method.Name, "On") {
		return KindHandler
	}
	return KindMethod
}

// returnTypeName renders the method's result list as a single normalized name.
func returnTypeName(mt reflect.Type) string {
	switch mt.NumOut() {
	case 0:
		return ""
	case 1:
		return friendlyTypeName(mt.Out(0))
	default:
		names := make([]string, mt.NumOut())
		for i := range names {
			names[i] = friendlyTypeName(mt.Out(i))
		}
		return "(" + strings.Join(names, ", ") + ")"
	}
}

// friendlyTypeName normalizes a Go type to a language-agnostic name via its
// implied cty type, falling back to the reflected type string for types the
// cty system cannot express (interfaces, functions, channels). Interface
// types never reach the cty conversion: their zero value is a nil interface,
// which gocty.ImpliedType cannot accept.
func friendlyTypeName(t reflect.Type) string {
	if t.Kind() != reflect.Interface {
		if implied, err := gocty.ImpliedType(reflect.Zero(t).Interface()); err == nil && implied != cty.NilType {
			return implied.FriendlyName()
		}
	}
	return strings.ReplaceAll(t.String(), "interface {}", "any")
}

// promotedFromEmbedded reports whether the named method reaches the type's
// method set through an anonymous (embedded) field, i.e. its declaring type
// differs from the most-derived type. This mirrors Go's method promotion
// rules. A method that shadows an embedded method of the same name is
// indistinguishable from the promoted one at runtime and is treated as
// inherited.
func promotedFromEmbedded(t reflect.Type, name string) bool {
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.Anonymous {
			continue
		}
		ft := field.Type
		if ft.Kind() != reflect.Pointer {
			ft = reflect.PointerTo(ft)
		}
		if _, ok := ft.MethodByName(name); ok {
			return true
		}
		if promotedFromEmbedded(field.Type, name) {
			return true
		}
	}
	return false
}

// isNilInstance guards against both nil interfaces and typed nil pointers.
func isNilInstance(instance any) bool {
	if instance == nil {
		return true
	}
	v := reflect.ValueOf(instance)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
