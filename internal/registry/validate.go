package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/internal/introspect"
)

// Validate performs a strict parity check between manifests and Go code.
// Every operation a manifest declares must exist on the registered instance
// with a compatible parameter list, so that a drifting manifest surfaces at
// startup instead of as a silently wrong inspection report.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.order {
		entry := r.entries[name]
		if entry.Table == nil {
			continue
		}

		for opName, decl := range entry.Table.Operations {
			goParams, ok := introspect.MethodParamTypes(entry.Instance, opName)
			if !ok {
				errs = append(errs, fmt.Sprintf("module '%s': manifest declares operation '%s' which is not found on the Go instance", name, opName))
				continue
			}

			if len(decl.Params) != len(goParams) {
				errs = append(errs, fmt.Sprintf("module '%s', operation '%s': manifest declares %d parameter(s) but Go method takes %d", name, opName, len(decl.Params), len(goParams)))
				continue
			}

			for i, declared := range decl.Params {
				manifestType := declared.Type
				if manifestType.Equals(cty.DynamicPseudoType) {
					logger.Warn("Manifest declares a parameter with 'type = any', which disables static type checking. Consider using a specific type like 'string', 'number', or 'bool'.",
						"module", name, "operation", opName, "param", declared.Name)
					continue
				}

				// An interface-typed Go parameter has a nil zero value, which
				// gocty.ImpliedType cannot accept; it is uncheckable here.
				if goParams[i].Kind() == reflect.Interface {
					logger.Warn("Parameter type cannot be expressed for static checking; skipping.",
						"module", name, "operation", opName, "param", declared.Name, "go_type", goParams[i].String())
					continue
				}

				goType, err := gocty.ImpliedType(reflect.Zero(goParams[i]).Interface())
				if err != nil {
					logger.Warn("Parameter type cannot be expressed for static checking; skipping.",
						"module", name, "operation", opName, "param", declared.Name, "go_type", goParams[i].String())
					continue
				}

				if !manifestType.Equals(goType) {
					errs = append(errs, fmt.Sprintf("module '%s', operation '%s', param '%s': type mismatch. Manifest requires '%s' but Go method provides '%s'",
						name, opName, declared.Name, manifestType.FriendlyName(), goType.FriendlyName()))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
