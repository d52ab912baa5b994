package report

// Report is the AI-written executive summary of a date range. It is never
// persisted; every request produces a fresh one.
type Report struct {
	ExecutiveSummary   string   `json:"executiveSummary"`
	KeyInsights        []string `json:"keyInsights"`
	Recommendations    []string `json:"recommendations"`
	HealthScore        float64  `json:"healthScore"`
	FinancialArchetype string   `json:"financialArchetype"`
}
