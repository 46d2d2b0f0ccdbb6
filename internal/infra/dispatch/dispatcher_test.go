package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jrpcd/internal/domain"
)

type fakeProc struct {
	params   any
	result   any
	declared []string
	execute  func(ctx context.Context, params any) (any, domain.Code)
}

func (p *fakeProc) Description() string { return "fake procedure" }
func (p *fakeProc) Parameters() any     { return p.params }
func (p *fakeProc) Result() any         { return p.result }
func (p *fakeProc) Errors() []string    { return p.declared }

func (p *fakeProc) Execute(ctx context.Context, params any) (any, domain.Code) {
	if p.execute == nil {
		return nil, domain.NoError
	}
	return p.execute(ctx, params)
}

func numberParams() any {
	return map[string]any{
		"type":     "object",
		"required": []any{"a", "b"},
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
	}
}

func newDispatcher(t *testing.T, debug bool, procs map[string]domain.Procedure) *Dispatcher {
	t.Helper()
	table := NewTable()
	for name, proc := range procs {
		require.NoError(t, table.Register(name, proc))
	}
	d, err := New(table, Options{Debug: debug})
	require.NoError(t, err)
	return d
}

func TestNew_EmptyTable(t *testing.T) {
	_, err := New(NewTable(), Options{})
	require.Error(t, err)

	_, err = New(nil, Options{})
	require.Error(t, err)
}

func TestTable_RegisterDuplicate(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register("x", &fakeProc{}))
	require.Error(t, table.Register("x", &fakeProc{}))
	require.Error(t, table.Register("", &fakeProc{}))
	require.Error(t, table.Register("y", nil))
}

func TestTable_RegisterBadSchema(t *testing.T) {
	table := NewTable()
	err := table.Register("bad", &fakeProc{params: map[string]any{"type": 42}})
	require.Error(t, err)
}

func TestExecute_UnknownMethod(t *testing.T) {
	for _, debug := range []bool{false, true} {
		d := newDispatcher(t, debug, map[string]domain.Procedure{"known": &fakeProc{}})

		result, code := d.Execute(context.Background(), "missing", nil)
		assert.Equal(t, domain.CodeInvalidRequest, code)
		if debug {
			assert.Equal(t, "method does not exist", result)
		} else {
			assert.Nil(t, result)
		}
	}
}

func TestExecute_InvalidParams(t *testing.T) {
	for _, debug := range []bool{false, true} {
		d := newDispatcher(t, debug, map[string]domain.Procedure{
			"add": &fakeProc{params: numberParams()},
		})

		result, code := d.Execute(context.Background(), "add", map[string]any{"a": "one"})
		assert.Equal(t, domain.CodeInvalidParams, code)
		if debug {
			assert.Equal(t, "invalid, missing or unsupported parameter", result)
		} else {
			assert.Nil(t, result)
		}

		// Defaulted null params fail a schema requiring an object.
		_, code = d.Execute(context.Background(), "add", nil)
		assert.Equal(t, domain.CodeInvalidParams, code)
	}
}

func TestExecute_Success(t *testing.T) {
	d := newDispatcher(t, false, map[string]domain.Procedure{
		"add": &fakeProc{
			params: numberParams(),
			result: map[string]any{"type": "number"},
			execute: func(ctx context.Context, params any) (any, domain.Code) {
				obj := params.(map[string]any)
				return obj["a"].(float64) + obj["b"].(float64), domain.NoError
			},
		},
	})

	result, code := d.Execute(context.Background(), "add", map[string]any{"a": float64(2), "b": float64(3)})
	assert.Equal(t, domain.NoError, code)
	assert.Equal(t, float64(5), result)
}

func TestExecute_DeclaredErrorPassesThrough(t *testing.T) {
	for _, debug := range []bool{false, true} {
		d := newDispatcher(t, debug, map[string]domain.Procedure{
			"fail": &fakeProc{
				declared: []string{"ECUSTM"},
				execute: func(ctx context.Context, params any) (any, domain.Code) {
					return nil, domain.Code("ECUSTM")
				},
			},
		})

		_, code := d.Execute(context.Background(), "fail", nil)
		assert.Equal(t, domain.Code("ECUSTM"), code)
	}
}

func TestExecute_StandardErrorPassesThrough(t *testing.T) {
	d := newDispatcher(t, true, map[string]domain.Procedure{
		"boom": &fakeProc{
			execute: func(ctx context.Context, params any) (any, domain.Code) {
				return nil, domain.CodeInternal
			},
		},
	})

	_, code := d.Execute(context.Background(), "boom", nil)
	assert.Equal(t, domain.CodeInternal, code)
}

func TestExecute_UndeclaredErrorAudit(t *testing.T) {
	proc := &fakeProc{
		declared: []string{"EKNOWN"},
		execute: func(ctx context.Context, params any) (any, domain.Code) {
			return nil, domain.Code("X")
		},
	}

	// Production forwards the code untouched.
	d := newDispatcher(t, false, map[string]domain.Procedure{"fail": proc})
	result, code := d.Execute(context.Background(), "fail", nil)
	assert.Equal(t, domain.Code("X"), code)
	assert.Nil(t, result)

	// Debug remaps to EERROR and flags the violation.
	d = newDispatcher(t, true, map[string]domain.Procedure{"fail": proc})
	result, code = d.Execute(context.Background(), "fail", nil)
	assert.Equal(t, domain.CodeUndeclaredError, code)
	require.IsType(t, domain.Violation{}, result)
	violation := result.(domain.Violation)
	assert.Equal(t, []string{"EKNOWN"}, violation.Expected)
	assert.Equal(t, "X", violation.Returned)
}

func TestExecute_ResultAudit(t *testing.T) {
	proc := &fakeProc{
		result: map[string]any{"type": "number"},
		execute: func(ctx context.Context, params any) (any, domain.Code) {
			return "not a number", domain.NoError
		},
	}

	// Production trusts the procedure.
	d := newDispatcher(t, false, map[string]domain.Procedure{"calc": proc})
	result, code := d.Execute(context.Background(), "calc", nil)
	assert.Equal(t, domain.NoError, code)
	assert.Equal(t, "not a number", result)

	// Debug flags the result-schema violation.
	d = newDispatcher(t, true, map[string]domain.Procedure{"calc": proc})
	result, code = d.Execute(context.Background(), "calc", nil)
	assert.Equal(t, domain.CodeResultMismatch, code)
	require.IsType(t, domain.Violation{}, result)
	violation := result.(domain.Violation)
	assert.Equal(t, proc.Result(), violation.Expected)
	assert.Equal(t, "not a number", violation.Returned)
}

func TestExecute_Metrics(t *testing.T) {
	metrics := &captureMetrics{}
	table := NewTable()
	require.NoError(t, table.Register("ok", &fakeProc{}))
	d, err := New(table, Options{Metrics: metrics})
	require.NoError(t, err)

	d.Execute(context.Background(), "ok", nil)
	d.Execute(context.Background(), "missing", nil)

	require.Len(t, metrics.dispatches, 2)
	assert.Equal(t, domain.DispatchStatusSuccess, metrics.dispatches[0].Status)
	assert.Equal(t, domain.DispatchStatusError, metrics.dispatches[1].Status)
	assert.Equal(t, domain.CodeInvalidRequest, metrics.dispatches[1].Code)
}

type captureMetrics struct {
	dispatches []domain.DispatchMetric
	envelopes  []domain.EnvelopeKind
}

func (m *captureMetrics) ObserveDispatch(metric domain.DispatchMetric) {
	m.dispatches = append(m.dispatches, metric)
}

func (m *captureMetrics) ObserveEnvelope(kind domain.EnvelopeKind, items int) {
	m.envelopes = append(m.envelopes, kind)
}
