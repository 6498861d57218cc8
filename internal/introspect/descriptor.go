package introspect

import "github.com/zclconf/go-cty/cty"

// Kind classifies how the host runtime may dispatch an operation.
type Kind string

const (
	// KindMethod is an ordinary callable, dispatchable by name.
	KindMethod Kind = "method"
	// KindHandler is an event-handler-style callable, dispatchable by name.
	KindHandler Kind = "handler"
	// KindAccessor is a purely structural member (property accessor). Never
	// dispatched by name at runtime.
	KindAccessor Kind = "accessor"
)

// Parameter describes one positional operation parameter.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Operation describes a single callable exposed by a module instance. The
// JSON field layout is the wire contract consumed by the rendering layer;
// parameters is omitted entirely for zero-parameter operations.
type Operation struct {
	Name        string      `json:"name"`
	Signature   string      `json:"signature"`
	ReturnType  string      `json:"returnType"`
	IsInvokable bool        `json:"isInvokable"`
	Parameters  []Parameter `json:"parameters,omitempty"`

	isHandler bool
}

// Kind reports the dispatch category the operation was classified into.
func (op Operation) Kind() Kind {
	if !op.IsInvokable {
		return KindAccessor
	}
	if op.isHandler {
		return KindHandler
	}
	return KindMethod
}

// DeclaredParam is one parameter entry of a self-registered operation table.
type DeclaredParam struct {
	Name string
	Type cty.Type
}

// Declaration is the table entry for a single operation: its declared
// dispatch kind and its declared parameter names and types, in positional
// order.
type Declaration struct {
	Kind   Kind
	Params []DeclaredParam
}

// Table is a module's self-registered operation table. Go's reflection
// facility does not preserve parameter names or property annotations, so
// modules may declare them out of band; introspection overlays the table
// onto the reflected method set.
type Table struct {
	Operations map[string]Declaration
}

// Declaration looks up the table entry for an operation name.
func (t *Table) Declaration(name string) (Declaration, bool) {
	if t == nil {
		return Declaration{}, false
	}
	decl, ok := t.Operations[name]
	return decl, ok
}
