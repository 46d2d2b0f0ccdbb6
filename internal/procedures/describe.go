package procedures

import (
	"context"

	"jrpcd/internal/domain"
	"jrpcd/internal/infra/dispatch"
)

// Describe reports the declared contracts of every registered procedure:
// description, parameter and result schemas, and declared error codes. The
// introspection counterpart of debug-mode contract auditing.
type Describe struct {
	table *dispatch.Table
}

func NewDescribe(table *dispatch.Table) *Describe {
	return &Describe{table: table}
}

func (*Describe) Description() string {
	return "Lists every registered procedure with its declared contract."
}

func (*Describe) Parameters() any {
	return map[string]any{"type": []any{"object", "null"}}
}

func (*Describe) Result() any {
	return map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":     "object",
			"required": []any{"description", "parameters", "result", "errors"},
		},
	}
}

func (*Describe) Errors() []string { return nil }

func (d *Describe) Execute(ctx context.Context, params any) (any, domain.Code) {
	contracts := make(map[string]any, d.table.Len())
	for _, name := range d.table.Names() {
		proc, ok := d.table.Procedure(name)
		if !ok {
			continue
		}
		declared := proc.Errors()
		if declared == nil {
			declared = []string{}
		}
		contracts[name] = map[string]any{
			"description": proc.Description(),
			"parameters":  proc.Parameters(),
			"result":      proc.Result(),
			"errors":      declared,
		}
	}
	return contracts, domain.NoError
}

// RegisterBuiltins registers the default procedure set on a table, including
// a Describe bound to that same table.
func RegisterBuiltins(table *dispatch.Table) error {
	if err := table.Register("echo", Echo{}); err != nil {
		return err
	}
	if err := table.Register("sum", Sum{}); err != nil {
		return err
	}
	if err := table.Register("divide", Divide{}); err != nil {
		return err
	}
	return table.Register("describe", NewDescribe(table))
}
