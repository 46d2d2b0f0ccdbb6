package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, resp Response) string {
	t.Helper()
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(raw)
}

func TestResponse_MarshalSuccess(t *testing.T) {
	assert.JSONEq(t, `{"id":1,"result":5}`, marshal(t, Success(float64(1), float64(5))))
	assert.JSONEq(t, `{"id":null,"result":null}`, marshal(t, Success(nil, nil)))
	assert.JSONEq(t, `{"id":"k","result":[1,2]}`, marshal(t, Success("k", []any{float64(1), float64(2)})))
}

func TestResponse_MarshalFailure(t *testing.T) {
	assert.JSONEq(t, `{"id":null,"error":"EREQST"}`, marshal(t, Failure(nil, CodeInvalidRequest, nil)))
	assert.JSONEq(t,
		`{"id":2,"error":"EPARAM","debug":"detail"}`,
		marshal(t, Failure(float64(2), CodeInvalidParams, "detail")))
}

func TestResponse_ResultNeverAccompaniesError(t *testing.T) {
	raw := marshal(t, Response{ID: float64(1), Result: "leftover", Err: CodeInternal})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	_, hasResult := decoded["result"]
	assert.False(t, hasResult)
	assert.Equal(t, "EINTRN", decoded["error"])
}

func TestRequestFromObject(t *testing.T) {
	req := RequestFromObject(map[string]any{
		"jsonrpc": "2.0",
		"method":  "sum",
		"id":      float64(3),
		"params":  map[string]any{"a": float64(1)},
	})
	assert.Equal(t, "2.0", req.JSONRPC)
	assert.Equal(t, "sum", req.Method)
	assert.Equal(t, float64(3), req.ID)
	assert.NotNil(t, req.Params)

	// Absent id and params default to null.
	req = RequestFromObject(map[string]any{"jsonrpc": "2.0", "method": "sum"})
	assert.Nil(t, req.ID)
	assert.Nil(t, req.Params)
}
