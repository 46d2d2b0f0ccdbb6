// Package schema wraps JSON-Schema validation behind a boolean conformance
// predicate. Schemas are compiled once; validation itself keeps no state
// between calls, so a Compiled may be shared across concurrent requests.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Compiled is a resolved schema ready for repeated conformance checks.
type Compiled struct {
	resolved *jsonschema.Resolved
}

// Compile turns a JSON-Schema-shaped value into a Compiled predicate. A nil
// document compiles to the empty schema, which accepts everything.
func Compile(doc any) (*Compiled, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return CompileJSON(raw)
}

// CompileJSON compiles a schema from its JSON encoding.
func CompileJSON(raw []byte) (*Compiled, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}
	return &Compiled{resolved: resolved}, nil
}

// MustCompileJSON compiles a schema literal or panics. For package-level
// schema constants only.
func MustCompileJSON(raw string) *Compiled {
	c, err := CompileJSON([]byte(raw))
	if err != nil {
		panic(err)
	}
	return c
}

// Conforms reports whether value satisfies the schema. Non-conforming values
// produce false, never an error; callers decide the error code.
func (c *Compiled) Conforms(value any) bool {
	return c.resolved.Validate(value) == nil
}
