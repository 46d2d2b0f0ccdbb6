package domain

import "context"

// Procedure is the unit of executable behavior registered under a method
// name. Implementations are constructed once at configuration time and must
// not be mutated afterwards; the dispatcher shares them across concurrent
// requests without locking.
type Procedure interface {
	// Description returns a human-readable summary.
	Description() string
	// Parameters returns a JSON-Schema-shaped value describing the accepted
	// parameter shape.
	Parameters() any
	// Result returns a JSON-Schema-shaped value describing the shape of a
	// successful result.
	Result() any
	// Errors returns the complete set of non-standard codes this procedure
	// may return. Consulted only by debug-mode auditing, never enforced in
	// production.
	Errors() []string
	// Execute performs the work. Params have already passed the parameter
	// schema. A procedure returns either a result or a code, never both;
	// NoError means success.
	Execute(ctx context.Context, params any) (any, Code)
}

// Violation is the structured debug payload attached when a procedure breaks
// its own declared contract.
type Violation struct {
	Expected any `json:"expected"`
	Returned any `json:"returned"`
}
