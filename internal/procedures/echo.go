// Package procedures holds the procedures the jrpcd binary registers by
// default. Embedding applications supply their own instead; these double as
// working examples of the contract surface.
package procedures

import (
	"context"

	"jrpcd/internal/domain"
)

// Echo returns its parameters unchanged.
type Echo struct{}

func (Echo) Description() string {
	return "Returns the supplied parameters unchanged."
}

func (Echo) Parameters() any {
	return map[string]any{"type": []any{"object", "array", "null"}}
}

func (Echo) Result() any {
	return map[string]any{"type": []any{"object", "array", "null"}}
}

func (Echo) Errors() []string { return nil }

func (Echo) Execute(ctx context.Context, params any) (any, domain.Code) {
	return params, domain.NoError
}
