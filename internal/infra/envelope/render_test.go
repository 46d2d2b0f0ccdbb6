package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jrpcd/internal/domain"
)

func TestRender_SuccessAlwaysCarriesResult(t *testing.T) {
	r := NewRenderer(false, nil)

	resp := r.Render(float64(1), domain.NoError, float64(5))
	assert.JSONEq(t, `{"id":1,"result":5}`, string(r.Marshal(resp)))

	// A legitimate null result still produces the result key.
	resp = r.Render("abc", domain.NoError, nil)
	assert.JSONEq(t, `{"id":"abc","result":null}`, string(r.Marshal(resp)))
}

func TestRender_ErrorDiscardsDetailOutsideDebug(t *testing.T) {
	r := NewRenderer(false, nil)

	resp := r.Render(nil, domain.CodeInvalidRequest, "a very revealing message")
	assert.JSONEq(t, `{"id":null,"error":"EREQST"}`, string(r.Marshal(resp)))
}

func TestRender_ErrorExposesDetailInDebug(t *testing.T) {
	r := NewRenderer(true, nil)

	resp := r.Render(float64(7), domain.CodeInvalidParams, "invalid, missing or unsupported parameter")
	assert.JSONEq(t,
		`{"id":7,"error":"EPARAM","debug":"invalid, missing or unsupported parameter"}`,
		string(r.Marshal(resp)))

	// No detail, no debug member, even in debug mode.
	resp = r.Render(float64(7), domain.CodeInvalidParams, nil)
	assert.JSONEq(t, `{"id":7,"error":"EPARAM"}`, string(r.Marshal(resp)))
}

func TestRender_ResultAndErrorMutuallyExclusive(t *testing.T) {
	r := NewRenderer(true, nil)

	resp := r.Render(float64(1), domain.CodeInternal, map[string]any{"partial": true})
	raw := r.Marshal(resp)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	_, hasResult := decoded["result"]
	_, hasError := decoded["error"]
	assert.False(t, hasResult)
	assert.True(t, hasError)
}

func TestMarshal_UnencodableResultDegrades(t *testing.T) {
	r := NewRenderer(false, nil)

	resp := r.Render(float64(3), domain.NoError, make(chan int))
	assert.JSONEq(t, `{"id":3,"error":"EINTRN"}`, string(r.Marshal(resp)))
}
