package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// StepFunc is the work of a single step
type StepFunc func(ctx context.Context) error

// StepObserver receives the final status and duration of every run step
type StepObserver interface {
	ObserveStep(ctx context.Context, step, status string, d time.Duration)
}

// Runner executes steps sequentially, tracing and logging each one
type Runner struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	state    *OperationState
	observer StepObserver
}

// NewRunner creates a runner for one operation. A nil tracer disables spans.
func NewRunner(id string, tracer trace.Tracer, logger *slog.Logger) *Runner {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	state := NewOperationState(id)
	state.Start()
	return &Runner{tracer: tracer, logger: logger, state: state}
}

// WithObserver sets the observer notified after each step
func (r *Runner) WithObserver(o StepObserver) *Runner {
	r.observer = o
	return r
}

// State returns the operation state
func (r *Runner) State() *OperationState {
	return r.state
}

// Run executes fn as the step id inside its own span. The step error is
// returned unchanged.
func (r *Runner) Run(ctx context.Context, id, name string, fn StepFunc) error {
	step := NewStepState(id, name)
	r.state.AddStep(step)

	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("operation.step.%s", id),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", r.state.ID),
			attribute.String("step.id", id),
			attribute.String("step.name", name),
		),
	)
	defer span.End()

	step.Start()
	r.logger.DebugContext(ctx, "Step started", slog.String("step", id))

	if err := fn(ctx); err != nil {
		step.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("step.status", string(StepStatusFailed)))
		r.logger.ErrorContext(ctx, "Step failed",
			slog.String("step", id),
			slog.String("error", err.Error()))
		r.observe(ctx, step)
		return err
	}

	step.Complete()
	span.SetStatus(codes.Ok, "")
	span.SetAttributes(
		attribute.String("step.status", string(StepStatusCompleted)),
		attribute.Float64("step.duration_seconds", step.Duration().Seconds()),
	)
	r.logger.DebugContext(ctx, "Step completed",
		slog.String("step", id),
		slog.Duration("duration", step.Duration()))
	r.observe(ctx, step)
	return nil
}

func (r *Runner) observe(ctx context.Context, step *StepState) {
	if r.observer != nil {
		r.observer.ObserveStep(ctx, step.ID, string(step.GetStatus()), step.Duration())
	}
}

// Skip records id as skipped without running it
func (r *Runner) Skip(ctx context.Context, id, name, reason string) {
	step := NewStepState(id, name)
	step.Skip(reason)
	r.state.AddStep(step)

	_, span := r.tracer.Start(ctx, fmt.Sprintf("operation.step.%s", id),
		trace.WithAttributes(
			attribute.String("operation.id", r.state.ID),
			attribute.String("step.id", id),
			attribute.String("step.status", string(StepStatusSkipped)),
			attribute.String("step.reason", reason),
		),
	)
	span.End()

	r.logger.WarnContext(ctx, "Step skipped",
		slog.String("step", id),
		slog.String("reason", reason))
}

// Finish closes the operation, failed when err is non-nil
func (r *Runner) Finish(err error) *OperationState {
	if err != nil {
		r.state.Fail(err)
	} else {
		r.state.Complete()
	}
	return r.state
}
