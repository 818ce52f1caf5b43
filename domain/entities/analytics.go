package entities

// KPIMetric is a single headline metric on the analytics dashboard
type KPIMetric struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Status string  `json:"status"` // "excellent", "good", "fair", "poor"
}

// PerformanceTrend is the per-question score series
type PerformanceTrend struct {
	Question int     `json:"question"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// SkillBreakdown is one slice of the skill distribution chart
type SkillBreakdown struct {
	Skill      string  `json:"skill"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// CategoryPerformance is one bar of the category score chart
type CategoryPerformance struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
}

// AnalyticsDashboard aggregates every scored view of an interview
type AnalyticsDashboard struct {
	KPIs                []KPIMetric           `json:"kpis"`
	PerformanceTrend    []PerformanceTrend    `json:"performanceTrend"`
	SkillBreakdown      []SkillBreakdown      `json:"skillBreakdown"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance"`
	Strengths           []string              `json:"strengths"`
	Improvements        []string              `json:"improvements"`
	Recommendation      string                `json:"recommendation"`
	OverallScore        float64               `json:"overallScore"`
}

// AnalyticsResult pairs the dashboard with the difficulty heatmap scores
type AnalyticsResult struct {
	Dashboard        AnalyticsDashboard `json:"dashboard"`
	DifficultyScores map[string]float64 `json:"difficultyScores"`
}
