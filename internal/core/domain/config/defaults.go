package configdomain

// Rule is a cross-field dependency constraint. Expression is evaluated
// over the fully typed value map after every individual field has
// validated; a false result is a DEPENDENCY_VIOLATION naming Keys.
type Rule struct {
	Name       string
	Keys       []string
	Expression string
	Hint       string
}

// DefaultRegistry returns the setting table for the performance-analysis
// toolset. Built once at startup and shared read-only.
func DefaultRegistry() *Registry {
	return MustNewRegistry(
		Definition{
			Name: "MAX_PARALLEL_JOBS", Kind: KindInt, Min: 1, Max: 32, Default: "4",
			Desc: "number of analysis jobs run concurrently",
		},
		Definition{
			Name: "CACHE_TTL", Kind: KindInt, Min: 60, Max: 86400, Default: "1800",
			Desc: "seconds cached workflow data stays fresh",
		},
		Definition{
			Name: "LOG_LEVEL", Kind: KindEnum, Enum: []string{"DEBUG", "INFO", "WARN", "ERROR"}, Default: "INFO",
			Desc: "minimum level written to the log",
		},
		Definition{
			Name: "BENCHMARK_ITERATIONS", Kind: KindInt, Min: 1, Max: 100, Default: "5",
			Desc: "iterations per benchmark run",
		},
		Definition{
			Name: "ADAPTIVE_TUNING", Kind: KindBool, Default: "false",
			Desc: "adjust job counts from observed runner load",
		},
		Definition{
			Name: "LOAD_TEST_DURATION", Kind: KindInt, Min: 10, Max: 3600, Default: "300",
			Desc: "seconds a load test runs",
		},
		Definition{
			Name: "REQUEST_TIMEOUT", Kind: KindInt, Min: 1, Max: 300, Default: "30",
			Desc: "seconds before an API request is abandoned",
		},
		Definition{
			Name: "REPORT_FORMAT", Kind: KindEnum, Enum: []string{"TEXT", "JSON", "MARKDOWN"}, Default: "TEXT",
			Desc: "output format of generated reports",
		},
		Definition{
			Name: "RESULTS_DIR", Kind: KindPath, Default: ".apf-results",
			Desc: "directory benchmark and load-test results are written to",
		},
		Definition{
			Name: "GITHUB_API_URL", Kind: KindString, Default: "https://api.github.com",
			Desc: "base URL of the GitHub API",
		},
		Definition{
			Name: "METRICS_RETENTION_DAYS", Kind: KindInt, Min: 1, Max: 365, Default: "30",
			Desc: "days collected metrics are kept",
		},
		Definition{
			Name: "FAIL_ON_REGRESSION", Kind: KindBool, Default: "true",
			Desc: "exit non-zero when a performance regression is detected",
		},
		Definition{
			Name: "REGRESSION_THRESHOLD", Kind: KindInt, Min: 1, Max: 100, Default: "10",
			Desc: "percent slowdown considered a regression",
		},
	)
}

// DefaultRules returns the cross-field dependency rules for the default
// registry.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:       "adaptive-tuning-needs-iterations",
			Keys:       []string{"ADAPTIVE_TUNING", "BENCHMARK_ITERATIONS"},
			Expression: "!ADAPTIVE_TUNING || BENCHMARK_ITERATIONS >= 3",
			Hint:       "set BENCHMARK_ITERATIONS to at least 3 when ADAPTIVE_TUNING is enabled",
		},
		{
			Name:       "regression-gate-threshold",
			Keys:       []string{"FAIL_ON_REGRESSION", "REGRESSION_THRESHOLD"},
			Expression: "!FAIL_ON_REGRESSION || REGRESSION_THRESHOLD <= 50",
			Hint:       "set REGRESSION_THRESHOLD to at most 50 when FAIL_ON_REGRESSION is enabled",
		},
	}
}
