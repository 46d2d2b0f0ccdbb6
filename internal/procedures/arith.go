package procedures

import (
	"context"

	"jrpcd/internal/domain"
)

// CodeDivisionByZero is the declared error code of Divide.
const CodeDivisionByZero = "EDIVZR"

func twoNumberParams() any {
	return map[string]any{
		"type":     "object",
		"required": []any{"a", "b"},
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
	}
}

// Sum adds two numbers.
type Sum struct{}

func (Sum) Description() string { return "Adds the numbers a and b." }
func (Sum) Parameters() any     { return twoNumberParams() }
func (Sum) Result() any         { return map[string]any{"type": "number"} }
func (Sum) Errors() []string    { return nil }

func (Sum) Execute(ctx context.Context, params any) (any, domain.Code) {
	obj := params.(map[string]any)
	a, _ := obj["a"].(float64)
	b, _ := obj["b"].(float64)
	return a + b, domain.NoError
}

// Divide divides a by b, declaring a code for the zero-divisor case.
type Divide struct{}

func (Divide) Description() string { return "Divides the number a by the number b." }
func (Divide) Parameters() any     { return twoNumberParams() }
func (Divide) Result() any         { return map[string]any{"type": "number"} }
func (Divide) Errors() []string    { return []string{CodeDivisionByZero} }

func (Divide) Execute(ctx context.Context, params any) (any, domain.Code) {
	obj := params.(map[string]any)
	a, _ := obj["a"].(float64)
	b, _ := obj["b"].(float64)
	quotient, err := divide(a, b)
	if err != nil {
		return nil, domain.CodeOf(err)
	}
	return quotient, domain.NoError
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, domain.E(domain.Code(CodeDivisionByZero), "divide", "division by zero", nil)
	}
	return a / b, nil
}
