package config

// Application constants
const (
	// Application Info
	AppName    = "LPB Analyzer"
	AppVersion = "1.0.0"

	// Environment variable prefix and config file override
	EnvPrefix     = "LPB"
	ConfigFileEnv = "LPB_CONFIG"

	// Default paths
	DefaultOutputDir     = "./exports/lpb"
	DefaultGeneratedCSV  = "./examples/links_generated.csv"
	DefaultLogFile       = "logs/lpb.log"
	DefaultWorkbookName  = "lpb_report.xlsx"
	DefaultMetricsPrefix = "lpb"

	// Default column bindings
	DefaultJoinKey        = "link_id"
	DefaultScenarioCol    = "scenario"
	DefaultMarginCol      = "margin_db"
	DefaultStatusCol      = "lpb_status"
	DefaultFiberLengthCol = "fiber_length_km"
	DefaultTopContributor = "top_contributor_1"

	// Analysis defaults
	DefaultWorstN = 10

	// Chart defaults
	DefaultDPI             = 200
	DefaultHistogramBins   = 30
	DefaultTopContributors = 10
	DefaultChartWidthIn    = 6.4
	DefaultChartHeightIn   = 4.8

	// Generator defaults
	DefaultGenerateCount = 1000
	DefaultSeed          = 42
	DefaultScenario      = "base"
)

// Output artifact names
const (
	SummaryFileName             = "summary_by_scenario.csv"
	WorstFilePattern            = "worst_%d.csv"
	MarginHistogramFileName     = "margin_distribution.png"
	PassFailFileName            = "pass_or_fail_summary.png"
	MarginVsFiberLengthFileName = "margin_vs_fiber_length.png"
	TopContributorsFileName     = "top_contributors.png"
)

// Auxiliary columns pulled from the input-links table besides the
// configured fiber length column.
const (
	SplitterLossCol      = "splitter_loss_db"
	FiberAttenuationCol  = "fiber_att_db_per_km"
	EngineeringMarginCol = "engineering_margin_db"
)
