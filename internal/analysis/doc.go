// Package analysis implements the LPB results pipeline: loading a results
// table, merging per-link input parameters, aggregating per scenario and
// persisting the summary tables.
//
// The steps run in a fixed order:
//
//	loader := analysis.NewLoader(logger)
//	ds, err := loader.LoadResults(ctx, cfg)
//	ds, err = loader.MergeInputs(ctx, cfg, ds)
//	summaries := analysis.Summarize(ds, cfg)
//	report, err := analysis.NewReporter(cfg, logger).SaveSummary(ctx, ds)
//
// Margins are float64 with NaN for missing or unparsable cells. Missing
// margins are ignored by every statistic and excluded from the worst-links
// table; they still count towards n_links and the pass rate.
package analysis
