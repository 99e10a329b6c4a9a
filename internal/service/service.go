// Package service exposes the calculator engine with history and memory as
// one concurrent-safe facade.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/zephyrtronium/procalc"
	"github.com/zephyrtronium/procalc/internal/history"
	"github.com/zephyrtronium/procalc/internal/memory"
)

// Name is the instrumentation scope of the service's spans and metrics.
const Name = "github.com/zephyrtronium/procalc/internal/service"

// Evaluation statuses.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Response is the outcome of evaluating one expression.
type Response struct {
	Expression string `json:"expression"`
	// Result is the plain decimal form of the value.
	Result string `json:"result,omitempty"`
	// Formatted is the display form of the value.
	Formatted string `json:"formatted,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// Calculator evaluates expressions and maintains the history log and memory
// register. It is safe for concurrent use.
type Calculator struct {
	engine  *procalc.Context
	history history.Store
	memory  *memory.Register
	logger  *zap.Logger
	tracer  trace.Tracer

	evaluations metric.Int64Counter
	duration    metric.Float64Histogram
}

type options struct {
	logger *zap.Logger
	tp     trace.TracerProvider
	mp     metric.MeterProvider
}

// Option configures a Calculator.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTracerProvider sets the tracer provider. The default is the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tp = tp }
}

// WithMeterProvider sets the meter provider. The default is the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.mp = mp }
}

// New creates a calculator evaluating with engine, recording successful
// evaluations in hist, and holding memory in mem.
func New(engine *procalc.Context, hist history.Store, mem *memory.Register, opts ...Option) (*Calculator, error) {
	o := options{
		logger: zap.NewNop(),
		tp:     otel.GetTracerProvider(),
		mp:     otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	meter := o.mp.Meter(Name)
	evals, err := meter.Int64Counter("procalc.evaluations",
		metric.WithDescription("Number of expressions evaluated."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluation counter: %w", err)
	}
	dur, err := meter.Float64Histogram("procalc.evaluation.duration",
		metric.WithDescription("Time spent evaluating expressions."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluation histogram: %w", err)
	}
	return &Calculator{
		engine:      engine,
		history:     hist,
		memory:      mem,
		logger:      o.logger,
		tracer:      o.tp.Tracer(Name),
		evaluations: evals,
		duration:    dur,
	}, nil
}

// Evaluate evaluates expr and records it in the history if it succeeds.
// Failing to record is logged but does not change the response.
func (c *Calculator) Evaluate(ctx context.Context, expr string) Response {
	return c.evaluate(ctx, expr, true)
}

// Preview evaluates expr without recording it.
func (c *Calculator) Preview(ctx context.Context, expr string) Response {
	return c.evaluate(ctx, expr, false)
}

func (c *Calculator) evaluate(ctx context.Context, expr string, record bool) Response {
	ctx, span := c.tracer.Start(ctx, "procalc.evaluate", trace.WithAttributes(
		attribute.String("procalc.expression", expr),
		attribute.Bool("procalc.preview", !record),
	))
	defer span.End()
	start := time.Now()

	resp := Response{Expression: expr, Status: StatusOK}
	r, err := c.engine.EvaluateExpression(expr)
	if err != nil {
		resp.Status = StatusError
		resp.Message = err.Error()
		span.AddEvent("procalc.evaluation.error", trace.WithAttributes(attribute.String("error", err.Error())))
		c.logger.Debug("evaluation failed", zap.String("expression", expr), zap.Error(err))
	} else {
		resp.Result = r.String()
		resp.Formatted = procalc.Format(r)
		span.SetAttributes(attribute.String("procalc.result", resp.Result))
		if record {
			if _, err := c.history.Add(ctx, expr, resp.Result); err != nil {
				span.SetStatus(codes.Error, "recording history: "+err.Error())
				span.RecordError(err)
				c.logger.Warn("recording history failed", zap.String("expression", expr), zap.Error(err))
			}
		}
	}

	attrs := metric.WithAttributes(
		attribute.String("status", resp.Status),
		attribute.Bool("preview", !record),
	)
	c.evaluations.Add(ctx, 1, attrs)
	c.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	return resp
}

// History returns the recorded evaluations, oldest first.
func (c *Calculator) History(ctx context.Context) ([]history.Entry, error) {
	ctx, span := c.tracer.Start(ctx, "procalc.history.list")
	defer span.End()
	entries, err := c.history.List(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return nil, err
	}
	return entries, nil
}

// ClearHistory removes all recorded evaluations.
func (c *Calculator) ClearHistory(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "procalc.history.clear")
	defer span.End()
	if err := c.history.Clear(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return err
	}
	c.logger.Info("history cleared")
	return nil
}

// Memory returns the memory register's value.
func (c *Calculator) Memory() decimal.Decimal {
	return c.memory.Recall()
}

// ApplyMemory performs a memory operation and returns the resulting value.
// See memory.Register.Apply.
func (c *Calculator) ApplyMemory(op, operand string) decimal.Decimal {
	v := c.memory.Apply(op, operand)
	c.logger.Debug("memory operation", zap.String("op", op), zap.String("operand", operand), zap.Stringer("memory", v))
	return v
}

// Precision returns the number of significant digits of evaluations.
func (c *Calculator) Precision() int {
	return c.engine.Prec()
}
