// Package operations runs a pipeline as a sequence of named steps.
//
// Each step gets its own span from the run tracer and a StepState that
// records its status, timing and error. Optional steps can be marked as
// skipped with a reason instead of being run. The OperationState collects
// the step states of one run in execution order.
//
// Example usage:
//
//	runner := operations.NewRunner(runID, tracer, logger)
//	err := runner.Run(ctx, "load", "Load results", func(ctx context.Context) error {
//		ds, err = loader.LoadResults(ctx, cfg)
//		return err
//	})
//	runner.Skip(ctx, "plot_scatter", "Margin vs fiber length", "missing fiber_length_km")
//	state := runner.Finish(err)
package operations
