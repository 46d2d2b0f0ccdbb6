// Package envelope validates raw JSON-RPC payloads against the request
// envelope shapes and orchestrates single and batch dispatch.
package envelope

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"jrpcd/internal/domain"
	"jrpcd/internal/infra/dispatch"
	"jrpcd/internal/infra/schema"
)

const msgMalformedEnvelope = "malformed request envelope"

// singleRequestSchemaJSON is the envelope shape of one request: jsonrpc must
// equal "2.0" and method must be a string; id and params are optional.
// Foreign members are tolerated.
const singleRequestSchemaJSON = `{
  "type": "object",
  "required": ["jsonrpc", "method"],
  "properties": {
    "jsonrpc": {"const": "2.0"},
    "method": {"type": "string"},
    "id": {"type": ["string", "number", "null"]},
    "params": {"type": ["array", "object"]}
  }
}`

// A batch is any array of zero or more single-request envelopes.
var (
	singleRequestSchema = schema.MustCompileJSON(singleRequestSchemaJSON)
	batchRequestSchema  = schema.MustCompileJSON(`{"type": "array", "items": ` + singleRequestSchemaJSON + `}`)
)

type Options struct {
	Logger  *zap.Logger
	Metrics domain.Metrics
}

// Processor turns one raw request body into one serialized response body.
// It holds no per-request state and may be shared across goroutines.
type Processor struct {
	dispatcher *dispatch.Dispatcher
	renderer   *Renderer
	logger     *zap.Logger
	metrics    domain.Metrics
}

func NewProcessor(dispatcher *dispatch.Dispatcher, debug bool, opts Options) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		dispatcher: dispatcher,
		renderer:   NewRenderer(debug, logger),
		logger:     logger.Named("envelope"),
		metrics:    opts.Metrics,
	}
}

// Process decodes body and runs the envelope algorithm: a single object is
// dispatched once, an array is dispatched element by element with output
// order matching input order, anything else is a malformed request.
func (p *Processor) Process(ctx context.Context, body []byte) []byte {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		p.observeEnvelope(domain.EnvelopeMalformed, 1)
		p.logger.Debug("request body not decodable", zap.Error(err))
		return p.renderInvalid("could not decode request body")
	}

	switch value := decoded.(type) {
	case map[string]any:
		return p.renderer.Marshal(p.processSingle(ctx, value))
	case []any:
		return p.processBatch(ctx, value)
	default:
		p.observeEnvelope(domain.EnvelopeMalformed, 1)
		return p.renderInvalid(msgMalformedEnvelope)
	}
}

// RenderTransportError serializes the response for failures the transport
// detects before envelope logic runs (wrong content type, unreadable body).
func (p *Processor) RenderTransportError(msg string) []byte {
	return p.renderInvalid(msg)
}

func (p *Processor) renderInvalid(msg string) []byte {
	return p.renderer.Marshal(p.renderer.Render(nil, domain.CodeInvalidRequest, msg))
}

func (p *Processor) processSingle(ctx context.Context, obj map[string]any) domain.Response {
	if !singleRequestSchema.Conforms(obj) {
		p.observeEnvelope(domain.EnvelopeMalformed, 1)
		return p.renderer.Render(nil, domain.CodeInvalidRequest, msgMalformedEnvelope)
	}
	p.observeEnvelope(domain.EnvelopeSingle, 1)
	return p.dispatchItem(ctx, obj)
}

// processBatch validates the whole array up front; a shape violation anywhere
// fails the batch as one EREQST response. Past that point items are fully
// independent: each contributes its own response object, in input order.
func (p *Processor) processBatch(ctx context.Context, items []any) []byte {
	if !batchRequestSchema.Conforms(items) {
		p.observeEnvelope(domain.EnvelopeMalformed, 1)
		return p.renderInvalid(msgMalformedEnvelope)
	}
	p.observeEnvelope(domain.EnvelopeBatch, len(items))

	rendered := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			// Unreachable once the batch schema passed; kept as a guard.
			rendered = append(rendered, p.renderInvalid(msgMalformedEnvelope))
			continue
		}
		rendered = append(rendered, p.renderer.Marshal(p.dispatchItem(ctx, obj)))
	}

	out, err := json.Marshal(rendered)
	if err != nil {
		p.logger.Error("batch response not encodable", zap.Error(err))
		return p.renderInvalid(msgMalformedEnvelope)
	}
	return out
}

// dispatchItem runs the shared single-request path: id and params default to
// null, the dispatcher resolves and executes, the renderer shapes the result.
func (p *Processor) dispatchItem(ctx context.Context, obj map[string]any) domain.Response {
	req := domain.RequestFromObject(obj)
	result, code := p.dispatcher.Execute(ctx, req.Method, req.Params)
	return p.renderer.Render(req.ID, code, result)
}

func (p *Processor) observeEnvelope(kind domain.EnvelopeKind, items int) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveEnvelope(kind, items)
}
