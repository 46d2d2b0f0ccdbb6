package dispatch

import (
	"fmt"
	"sort"

	"jrpcd/internal/domain"
	"jrpcd/internal/infra/schema"
)

// contract binds a registered procedure to its compiled schemas and declared
// error set.
type contract struct {
	proc     domain.Procedure
	params   *schema.Compiled
	result   *schema.Compiled
	declared map[domain.Code]struct{}
}

func (c *contract) declares(code domain.Code) bool {
	_, ok := c.declared[code]
	return ok
}

// Table is the name-keyed procedure mapping. It is populated at configuration
// time and read-only afterwards; the dispatcher shares it across requests
// without locking.
type Table struct {
	contracts map[string]*contract
}

func NewTable() *Table {
	return &Table{contracts: make(map[string]*contract)}
}

// Register adds a procedure under a unique method name, compiling its
// parameter and result schemas. A schema a procedure cannot express fails
// here, at configuration time, not during dispatch.
func (t *Table) Register(name string, proc domain.Procedure) error {
	if name == "" {
		return fmt.Errorf("register procedure: empty method name")
	}
	if proc == nil {
		return fmt.Errorf("register %q: nil procedure", name)
	}
	if _, exists := t.contracts[name]; exists {
		return fmt.Errorf("register %q: method name already registered", name)
	}

	params, err := schema.Compile(proc.Parameters())
	if err != nil {
		return fmt.Errorf("register %q: parameter schema: %w", name, err)
	}
	result, err := schema.Compile(proc.Result())
	if err != nil {
		return fmt.Errorf("register %q: result schema: %w", name, err)
	}

	declared := make(map[domain.Code]struct{}, len(proc.Errors()))
	for _, code := range proc.Errors() {
		declared[domain.Code(code)] = struct{}{}
	}

	t.contracts[name] = &contract{
		proc:     proc,
		params:   params,
		result:   result,
		declared: declared,
	}
	return nil
}

func (t *Table) Len() int {
	return len(t.contracts)
}

// Names returns the registered method names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.contracts))
	for name := range t.contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Procedure looks up a registered procedure by name. Used for contract
// introspection; dispatch goes through the Dispatcher.
func (t *Table) Procedure(name string) (domain.Procedure, bool) {
	c, ok := t.contracts[name]
	if !ok {
		return nil, false
	}
	return c.proc, true
}
