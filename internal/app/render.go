package app

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/logos-core/lm/internal/introspect"
	"github.com/logos-core/lm/internal/metadata"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// builtinReport pairs a static module's descriptor with its operation set.
type builtinReport struct {
	Metadata   metadata.Descriptor
	Operations []introspect.Operation
}

// builtinWire is the machine-readable shape of one built-in module report.
type builtinWire struct {
	Metadata   metadataWire           `json:"metadata"`
	Operations []introspect.Operation `json:"operations"`
}

// metadataWire is the machine-readable descriptor shape. Dependencies is
// always present, as an empty array when the module has none.
type metadataWire struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	Type         string   `json:"type"`
	Dependencies []string `json:"dependencies"`
}

func toWire(desc metadata.Descriptor) metadataWire {
	deps := desc.Dependencies
	if deps == nil {
		deps = []string{}
	}
	return metadataWire{
		Name:         desc.Name,
		Version:      desc.Version,
		Description:  desc.Description,
		Author:       desc.Author,
		Type:         desc.Type,
		Dependencies: deps,
	}
}

func renderMetadataHuman(w io.Writer, desc metadata.Descriptor) {
	fmt.Fprint(w, "Module Metadata:\n")
	fmt.Fprint(w, "================\n")
	fmt.Fprintf(w, "Name:         %s\n", desc.Name)
	fmt.Fprintf(w, "Version:      %s\n", desc.Version)
	fmt.Fprintf(w, "Description:  %s\n", desc.Description)
	fmt.Fprintf(w, "Author:       %s\n", desc.Author)
	fmt.Fprintf(w, "Type:         %s\n", desc.Type)

	if len(desc.Dependencies) > 0 {
		fmt.Fprintf(w, "Dependencies: %s\n", strings.Join(desc.Dependencies, ", "))
	} else {
		fmt.Fprint(w, "Dependencies: (none)\n")
	}
}

func renderMetadataJSON(w io.Writer, desc metadata.Descriptor) error {
	return writeIndentedJSON(w, toWire(desc))
}

func renderOperationsHuman(w io.Writer, ops []introspect.Operation) {
	fmt.Fprint(w, "Module Operations:\n")
	fmt.Fprint(w, "==================\n\n")

	if len(ops) == 0 {
		fmt.Fprint(w, "(no operations found)\n")
		return
	}

	for _, op := range ops {
		fmt.Fprintf(w, "%s %s(", op.ReturnType, op.Name)
		for i, param := range op.Parameters {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "%s %s", param.Type, param.Name)
		}
		fmt.Fprint(w, ")\n")
		fmt.Fprintf(w, "  Signature: %s\n", op.Signature)
		invokable := "no"
		if op.IsInvokable {
			invokable = "yes"
		}
		fmt.Fprintf(w, "  Invokable: %s\n\n", invokable)
	}
}

func renderOperationsJSON(w io.Writer, ops []introspect.Operation) error {
	if ops == nil {
		ops = []introspect.Operation{}
	}
	return writeIndentedJSON(w, ops)
}

func renderBuiltinsHuman(w io.Writer, reports []builtinReport) {
	fmt.Fprint(w, "Built-in Modules:\n")
	fmt.Fprint(w, "=================\n\n")

	if len(reports) == 0 {
		fmt.Fprint(w, "(no built-in modules registered)\n")
		return
	}

	for _, report := range reports {
		fmt.Fprintf(w, "%s\n", report.Metadata.Name)
		if report.Metadata.Version != "" {
			fmt.Fprintf(w, "  Version:     %s\n", report.Metadata.Version)
		}
		if report.Metadata.Description != "" {
			fmt.Fprintf(w, "  Description: %s\n", report.Metadata.Description)
		}
		names := make([]string, len(report.Operations))
		for i, op := range report.Operations {
			names[i] = op.Name
		}
		fmt.Fprintf(w, "  Operations:  %s\n\n", strings.Join(names, ", "))
	}
}

func renderBuiltinsJSON(w io.Writer, reports []builtinReport) error {
	wire := make([]builtinWire, 0, len(reports))
	for _, report := range reports {
		ops := report.Operations
		if ops == nil {
			ops = []introspect.Operation{}
		}
		wire = append(wire, builtinWire{Metadata: toWire(report.Metadata), Operations: ops})
	}
	return writeIndentedJSON(w, wire)
}

func writeIndentedJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
