// Package gateway is the HTTP transport shim. It moves bytes between the
// wire and the envelope processor: content-type gate in, response body plus
// headers out. Everything richer than that stays with net/http.
package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"jrpcd/internal/domain"
	"jrpcd/internal/infra/envelope"
	"jrpcd/internal/infra/telemetry"
)

type Options struct {
	Debug        bool
	MaxBodyBytes int64
	Logger       *zap.Logger
}

type Handler struct {
	processor    *envelope.Processor
	debug        bool
	maxBodyBytes int64
	logger       *zap.Logger
}

func NewHandler(processor *envelope.Processor, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBodyBytes := opts.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = domain.DefaultMaxBodyBytes
	}
	return &Handler{
		processor:    processor,
		debug:        opts.Debug,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.Named("gateway"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, _ := telemetry.WithRequestID(r.Context(), r.Header.Get(telemetry.RequestIDHeader))
	logger := telemetry.LoggerWithRequest(ctx, h.logger)

	if r.Method != http.MethodPost {
		http.Error(w, "JSON-RPC requires POST", http.StatusMethodNotAllowed)
		return
	}

	if !acceptedContentType(r.Header.Get("Content-Type")) {
		logger.Debug("rejected content type", zap.String("content_type", r.Header.Get("Content-Type")))
		h.write(w, start, h.processor.RenderTransportError("unsupported content type"))
		return
	}

	// MaxBytesReader errors on oversized bodies instead of truncating them,
	// which would otherwise let a cut-off prefix dispatch as valid JSON.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		logger.Debug("failed to read request body", zap.Error(err))
		h.write(w, start, h.processor.RenderTransportError("could not read request body"))
		return
	}

	out := h.processor.Process(ctx, body)
	h.write(w, start, out)

	logger.Debug("request dispatched",
		zap.Int("request_bytes", len(body)),
		zap.Int("response_bytes", len(out)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (h *Handler) write(w http.ResponseWriter, start time.Time, body []byte) {
	w.Header().Set("Content-Type", domain.ResponseContentType)
	if h.debug {
		w.Header().Set(domain.ElapsedHeader, time.Since(start).String())
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func acceptedContentType(contentType string) bool {
	for _, token := range domain.AcceptedContentTypes {
		if strings.HasPrefix(contentType, token) {
			return true
		}
	}
	return false
}
