package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtlang/mtl/ast"
	"github.com/mtlang/mtl/parse"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <template>",
		Short: "Parse an MTL template and print its AST as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := parse.Parse("<template>", args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(describeProgram(prog))
		},
	}
}

// describeProgram converts prog into a JSON-friendly tree; ast.Node's
// position-bearing structs aren't exported for marshaling directly.
func describeProgram(prog ast.Program) []map[string]any {
	out := make([]map[string]any, 0, len(prog))
	for _, node := range prog {
		switch n := node.(type) {
		case *ast.Literal:
			out = append(out, map[string]any{"kind": "literal", "text": n.Text})
		case *ast.Statement:
			out = append(out, describeStatement(n))
		}
	}
	return out
}

func describeStatement(s *ast.Statement) map[string]any {
	m := map[string]any{
		"kind":      "statement",
		"namespace": s.Namespace,
		"field":     s.Field,
	}
	if s.InPlace {
		m["inPlace"] = true
		m["delim"] = s.Delim
	}
	if len(s.Attributes) > 0 {
		m["attributes"] = s.Attributes
	}
	if len(s.Filters) > 0 {
		filters := make([]string, len(s.Filters))
		for i, f := range s.Filters {
			filters[i] = f.Name
		}
		m["filters"] = filters
	}
	if len(s.Replacements) > 0 {
		reps := make([]string, len(s.Replacements))
		for i, r := range s.Replacements {
			reps[i] = fmt.Sprintf("%s -> %s", r.Find, r.Replace)
		}
		m["replacements"] = reps
	}
	if s.Conditional != nil {
		m["conditional"] = string(s.Conditional.Op)
	}
	if s.HasCombine {
		m["combine"] = describeProgram(s.Combine)
	}
	if s.HasTrue {
		m["true"] = describeProgram(s.True)
	}
	if s.HasDefault {
		m["default"] = describeProgram(s.Default)
	}
	return m
}
