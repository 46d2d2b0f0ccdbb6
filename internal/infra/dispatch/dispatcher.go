// Package dispatch resolves method names to registered procedures, validates
// parameters, and in debug mode audits each procedure against its own
// declared contract.
package dispatch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"jrpcd/internal/domain"
)

// Diagnostic messages returned alongside failures in debug mode. Outside
// debug mode failing requests carry no detail at all.
const (
	msgMethodMissing = "method does not exist"
	msgInvalidParams = "invalid, missing or unsupported parameter"
)

type Options struct {
	Debug   bool
	Logger  *zap.Logger
	Metrics domain.Metrics
}

type Dispatcher struct {
	table   *Table
	debug   bool
	logger  *zap.Logger
	metrics domain.Metrics
}

func New(table *Table, opts Options) (*Dispatcher, error) {
	if table == nil || table.Len() == 0 {
		return nil, errors.New("dispatch: no procedures registered")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		table:   table,
		debug:   opts.Debug,
		logger:  logger.Named("dispatch"),
		metrics: opts.Metrics,
	}, nil
}

// Execute resolves method, validates params against the procedure's parameter
// schema, and invokes it. The returned pair carries either a result or a
// code, never both meaningfully: when the code is set, the result is the
// diagnostic payload a debug-mode renderer may expose.
func (d *Dispatcher) Execute(ctx context.Context, method string, params any) (any, domain.Code) {
	start := time.Now()
	result, code := d.execute(ctx, method, params)
	d.observe(method, code, time.Since(start))
	return result, code
}

func (d *Dispatcher) execute(ctx context.Context, method string, params any) (any, domain.Code) {
	c, ok := d.table.contracts[method]
	if !ok {
		d.logger.Debug("method not registered", zap.String("method", method))
		if d.debug {
			return msgMethodMissing, domain.CodeInvalidRequest
		}
		return nil, domain.CodeInvalidRequest
	}

	if !c.params.Conforms(params) {
		d.logger.Debug("parameter schema rejected params", zap.String("method", method))
		if d.debug {
			return msgInvalidParams, domain.CodeInvalidParams
		}
		return nil, domain.CodeInvalidParams
	}

	result, code := c.proc.Execute(ctx, params)

	// Contract auditing runs in debug mode only; production trusts the
	// procedure and forwards whatever it returned.
	if d.debug {
		if code != domain.NoError {
			if !domain.IsStandard(code) && !c.declares(code) {
				d.logger.Warn("procedure returned undeclared error code",
					zap.String("method", method),
					zap.String("code", string(code)),
				)
				violation := domain.Violation{Expected: c.proc.Errors(), Returned: string(code)}
				return violation, domain.CodeUndeclaredError
			}
		} else if !c.result.Conforms(result) {
			d.logger.Warn("procedure result failed its declared schema",
				zap.String("method", method),
			)
			violation := domain.Violation{Expected: c.proc.Result(), Returned: result}
			return violation, domain.CodeResultMismatch
		}
	}

	return result, code
}

func (d *Dispatcher) observe(method string, code domain.Code, duration time.Duration) {
	if d.metrics == nil {
		return
	}
	status := domain.DispatchStatusSuccess
	if code != domain.NoError {
		status = domain.DispatchStatusError
	}
	d.metrics.ObserveDispatch(domain.DispatchMetric{
		Method:   method,
		Code:     code,
		Status:   status,
		Duration: duration,
	})
}
