package envelope

import (
	"encoding/json"

	"go.uber.org/zap"

	"jrpcd/internal/domain"
)

// Renderer builds uniform response envelopes. It is one of the two places
// that consult the debug flag: outside debug mode the diagnostic payload
// accompanying an error is discarded before it can reach a client.
type Renderer struct {
	debug  bool
	logger *zap.Logger
}

func NewRenderer(debug bool, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{debug: debug, logger: logger.Named("render")}
}

// Render builds the response for one dispatched request. When code is set,
// detail is the diagnostic payload exposed as the debug member in debug mode
// only; on success detail is the result itself.
func (r *Renderer) Render(id any, code domain.Code, detail any) domain.Response {
	if code != domain.NoError {
		if r.debug && detail != nil {
			return domain.Failure(id, code, detail)
		}
		return domain.Failure(id, code, nil)
	}
	return domain.Success(id, detail)
}

// Marshal serializes one response envelope. A result a procedure produced
// that cannot be encoded degrades to a bare EINTRN response for the same id.
func (r *Renderer) Marshal(resp domain.Response) []byte {
	raw, err := json.Marshal(resp)
	if err != nil {
		r.logger.Error("response not encodable", zap.Error(err))
		raw, _ = json.Marshal(domain.Failure(resp.ID, domain.CodeInternal, nil))
	}
	return raw
}
