package domain

import "encoding/json"

// ProtocolVersion is the only accepted value of the jsonrpc member.
const ProtocolVersion = "2.0"

// Request is a decoded single-request envelope. ID and Params are nil when
// absent or null in the incoming message; the two cases are deliberately
// indistinguishable.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	ID      any    `json:"id"`
	Params  any    `json:"params"`
}

// RequestFromObject extracts an envelope from a schema-validated JSON object,
// defaulting absent id and params to null.
func RequestFromObject(obj map[string]any) Request {
	method, _ := obj["method"].(string)
	version, _ := obj["jsonrpc"].(string)
	return Request{
		JSONRPC: version,
		Method:  method,
		ID:      obj["id"],
		Params:  obj["params"],
	}
}

// Response is a response envelope. Err and Result are mutually exclusive;
// MarshalJSON is the single place deciding which keys appear on the wire, so
// a legitimate null result can never collide with an absent one.
type Response struct {
	ID     any
	Result any
	Err    Code
	Debug  any
}

// Success builds a result-carrying response.
func Success(id, result any) Response {
	return Response{ID: id, Result: result}
}

// Failure builds an error-carrying response. Debug is only ever populated by
// a renderer running in debug mode.
func Failure(id any, code Code, debug any) Response {
	return Response{ID: id, Err: code, Debug: debug}
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.Err != NoError {
		return json.Marshal(struct {
			ID    any    `json:"id"`
			Error string `json:"error"`
			Debug any    `json:"debug,omitempty"`
		}{r.ID, string(r.Err), r.Debug})
	}
	return json.Marshal(struct {
		ID     any `json:"id"`
		Result any `json:"result"`
	}{r.ID, r.Result})
}
