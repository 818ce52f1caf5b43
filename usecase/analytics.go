package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voxprep/interview-server/domain/entities"
	"github.com/voxprep/interview-server/domain/repositories"
)

// interviewMetrics is the JSON scoring contract the model is asked to fill.
// Fields are pre-seeded with defaults so absent keys keep a sane score.
type interviewMetrics struct {
	OverallScore            float64   `json:"overallScore"`
	TechnicalAccuracy       float64   `json:"technicalAccuracy"`
	CommunicationClarity    float64   `json:"communicationClarity"`
	ProblemSolving          float64   `json:"problemSolving"`
	DepthOfKnowledge        float64   `json:"depthOfKnowledge"`
	ConfidenceLevel         float64   `json:"confidenceLevel"`
	AverageResponseTime     float64   `json:"averageResponseTime"`
	HiringRecommendation    string    `json:"hiringRecommendation"`
	QuestionScores          []float64 `json:"questionScores"`
	TechnicalSkills         float64   `json:"technicalSkills"`
	SkillProblemSolving     float64   `json:"skillProblemSolving"`
	SkillCommunication      float64   `json:"skillCommunication"`
	SkillAnalyticalThinking float64   `json:"skillAnalyticalThinking"`
	SkillPracticalKnowledge float64   `json:"skillPracticalKnowledge"`
	SkillSystemDesign       float64   `json:"skillSystemDesign"`
	DSAReasoning            float64   `json:"dsaReasoning"`
	CodingKnowledge         float64   `json:"codingKnowledge"`
	BackendFundamentals     float64   `json:"backendFundamentals"`
	SystemDesign            float64   `json:"systemDesign"`
	AppliedProblemSolving   float64   `json:"appliedProblemSolving"`
	BehavioralSkills        float64   `json:"behavioralSkills"`
	EasyQuestionsScore      float64   `json:"easyQuestionsScore"`
	MediumQuestionsScore    float64   `json:"mediumQuestionsScore"`
	HardQuestionsScore      float64   `json:"hardQuestionsScore"`
	Strengths               []string  `json:"strengths"`
	Improvements            []string  `json:"improvements"`
	Recommendation          string    `json:"recommendation"`
}

func defaultMetrics() interviewMetrics {
	return interviewMetrics{
		OverallScore:            75,
		TechnicalAccuracy:       75,
		CommunicationClarity:    75,
		ProblemSolving:          75,
		DepthOfKnowledge:        75,
		ConfidenceLevel:         75,
		AverageResponseTime:     30,
		HiringRecommendation:    "Medium",
		TechnicalSkills:         75,
		SkillProblemSolving:     75,
		SkillCommunication:      75,
		SkillAnalyticalThinking: 75,
		SkillPracticalKnowledge: 75,
		SkillSystemDesign:       75,
		DSAReasoning:            75,
		CodingKnowledge:         75,
		BackendFundamentals:     75,
		SystemDesign:            75,
		AppliedProblemSolving:   75,
		BehavioralSkills:        75,
		EasyQuestionsScore:      85,
		MediumQuestionsScore:    75,
		HardQuestionsScore:      65,
		Strengths:               []string{"Clear communication", "Problem-solving ability", "Technical knowledge"},
		Improvements:            []string{"Provide more examples", "Elaborate on technical details", "Discuss edge cases"},
		Recommendation:          "Good candidate for further consideration.",
	}
}

// Analytics scores the interview transcript into the dashboard shape. Never
// fails: provider or parse failures yield the default dashboard.
func (s *InterviewService) Analytics(ctx context.Context, history []entities.ConversationMessage) *entities.AnalyticsResult {
	prompt := fmt.Sprintf(`Analyze this interview conversation and provide detailed performance metrics in JSON format.

%s

You must respond with ONLY valid JSON (no markdown, no code blocks) with this exact structure:
{
  "overallScore": <0-100>,
  "technicalAccuracy": <0-100>,
  "communicationClarity": <0-100>,
  "problemSolving": <0-100>,
  "depthOfKnowledge": <0-100>,
  "confidenceLevel": <0-100>,
  "averageResponseTime": <seconds>,
  "hiringRecommendation": "High|Medium|Low",
  "questionScores": [<score1>, <score2>, <score3>, <score4>, <score5>],
  "technicalSkills": <0-100>,
  "skillProblemSolving": <0-100>,
  "skillCommunication": <0-100>,
  "skillAnalyticalThinking": <0-100>,
  "skillPracticalKnowledge": <0-100>,
  "skillSystemDesign": <0-100>,
  "dsaReasoning": <0-100>,
  "codingKnowledge": <0-100>,
  "backendFundamentals": <0-100>,
  "systemDesign": <0-100>,
  "appliedProblemSolving": <0-100>,
  "behavioralSkills": <0-100>,
  "easyQuestionsScore": <0-100>,
  "mediumQuestionsScore": <0-100>,
  "hardQuestionsScore": <0-100>,
  "strengths": ["strength1", "strength2", "strength3"],
  "improvements": ["area1", "area2", "area3"],
  "recommendation": "Brief 2-3 sentence hiring recommendation"
}

Ensure all scores are between 0-100. Be objective and fair.`, formatConversation(history))

	response, err := s.llm.Generate(ctx, prompt, repositories.GenerateOptions{Temperature: 0.7})
	if err != nil {
		s.logger.Error("Failed to generate analytics, using default dashboard", zap.Error(err))
		return DefaultAnalytics()
	}

	metrics := defaultMetrics()
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &metrics); err != nil {
		s.logger.Error("Failed to parse analytics JSON, using default dashboard",
			zap.String("response", truncate(response, 200)),
			zap.Error(err))
		return DefaultAnalytics()
	}

	return buildAnalytics(metrics)
}

// stripCodeFences removes a surrounding markdown code block, including an
// optional json language tag, from a model response.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	parts := strings.Split(text, "```")
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

// kpiStatus buckets a 0-100 score.
func kpiStatus(value float64) string {
	switch {
	case value >= 85:
		return "excellent"
	case value >= 70:
		return "good"
	default:
		return "fair"
	}
}

func buildAnalytics(m interviewMetrics) *entities.AnalyticsResult {
	recommendationValue := 0.0
	switch m.HiringRecommendation {
	case "High":
		recommendationValue = 1.0
	case "Medium":
		recommendationValue = 0.5
	}
	recommendationStatus := "fair"
	switch m.HiringRecommendation {
	case "High":
		recommendationStatus = "excellent"
	case "Medium":
		recommendationStatus = "good"
	}

	responseTimeStatus := "fair"
	if m.AverageResponseTime < 60 {
		responseTimeStatus = "good"
	}

	kpis := []entities.KPIMetric{
		{Label: "Overall Interview Score", Value: m.OverallScore, Unit: "%", Status: kpiStatus(m.OverallScore)},
		{Label: "Technical Accuracy", Value: m.TechnicalAccuracy, Unit: "%", Status: kpiStatus(m.TechnicalAccuracy)},
		{Label: "Communication Clarity", Value: m.CommunicationClarity, Unit: "%", Status: kpiStatus(m.CommunicationClarity)},
		{Label: "Problem-Solving Skill", Value: m.ProblemSolving, Unit: "%", Status: kpiStatus(m.ProblemSolving)},
		{Label: "Depth of Knowledge", Value: m.DepthOfKnowledge, Unit: "%", Status: kpiStatus(m.DepthOfKnowledge)},
		{Label: "Confidence Level", Value: m.ConfidenceLevel, Unit: "%", Status: kpiStatus(m.ConfidenceLevel)},
		{Label: "Avg Response Time", Value: m.AverageResponseTime, Unit: "sec", Status: responseTimeStatus},
		{Label: "Hiring Recommendation", Value: recommendationValue, Unit: m.HiringRecommendation, Status: recommendationStatus},
	}

	questionScores := m.QuestionScores
	if len(questionScores) == 0 {
		questionScores = []float64{75, 75, 75, 75, 75}
	}
	trend := make([]entities.PerformanceTrend, 0, min(5, len(questionScores)))
	for i := 0; i < min(5, len(questionScores)); i++ {
		trend = append(trend, entities.PerformanceTrend{
			Question: i + 1,
			Score:    questionScores[i],
			Feedback: fmt.Sprintf("Question %d performance", i+1),
		})
	}

	skills := []entities.SkillBreakdown{
		{Skill: "Technical Skills", Percentage: m.TechnicalSkills, Color: "#8B5CF6"},
		{Skill: "Problem Solving", Percentage: m.SkillProblemSolving, Color: "#EC4899"},
		{Skill: "Communication", Percentage: m.SkillCommunication, Color: "#06B6D4"},
		{Skill: "Analytical Thinking", Percentage: m.SkillAnalyticalThinking, Color: "#F59E0B"},
		{Skill: "Practical Knowledge", Percentage: m.SkillPracticalKnowledge, Color: "#10B981"},
		{Skill: "System Design", Percentage: m.SkillSystemDesign, Color: "#6366F1"},
	}

	categories := []entities.CategoryPerformance{
		{Category: "DSA Reasoning", Score: m.DSAReasoning, MaxScore: 100},
		{Category: "Coding Knowledge", Score: m.CodingKnowledge, MaxScore: 100},
		{Category: "Backend Fundamentals", Score: m.BackendFundamentals, MaxScore: 100},
		{Category: "System Design", Score: m.SystemDesign, MaxScore: 100},
		{Category: "Applied Problem Solving", Score: m.AppliedProblemSolving, MaxScore: 100},
		{Category: "Behavioral Skills", Score: m.BehavioralSkills, MaxScore: 100},
	}

	return &entities.AnalyticsResult{
		Dashboard: entities.AnalyticsDashboard{
			KPIs:                kpis,
			PerformanceTrend:    trend,
			SkillBreakdown:      skills,
			CategoryPerformance: categories,
			Strengths:           m.Strengths,
			Improvements:        m.Improvements,
			Recommendation:      m.Recommendation,
			OverallScore:        m.OverallScore,
		},
		DifficultyScores: map[string]float64{
			"Easy":   m.EasyQuestionsScore,
			"Medium": m.MediumQuestionsScore,
			"Hard":   m.HardQuestionsScore,
		},
	}
}

// DefaultAnalytics is the dashboard served when scoring is unavailable.
func DefaultAnalytics() *entities.AnalyticsResult {
	return &entities.AnalyticsResult{
		Dashboard: entities.AnalyticsDashboard{
			KPIs: []entities.KPIMetric{
				{Label: "Overall Interview Score", Value: 75, Unit: "%", Status: "good"},
				{Label: "Technical Accuracy", Value: 75, Unit: "%", Status: "good"},
				{Label: "Communication Clarity", Value: 78, Unit: "%", Status: "good"},
				{Label: "Problem-Solving Skill", Value: 72, Unit: "%", Status: "fair"},
				{Label: "Depth of Knowledge", Value: 76, Unit: "%", Status: "good"},
				{Label: "Confidence Level", Value: 80, Unit: "%", Status: "good"},
				{Label: "Avg Response Time", Value: 45, Unit: "sec", Status: "good"},
				{Label: "Hiring Recommendation", Value: 0.5, Unit: "Medium", Status: "good"},
			},
			PerformanceTrend: []entities.PerformanceTrend{
				{Question: 1, Score: 78, Feedback: "Strong opening"},
				{Question: 2, Score: 75, Feedback: "Solid response"},
				{Question: 3, Score: 72, Feedback: "Moderate difficulty"},
				{Question: 4, Score: 75, Feedback: "Good recovery"},
				{Question: 5, Score: 76, Feedback: "Strong finish"},
			},
			SkillBreakdown: []entities.SkillBreakdown{
				{Skill: "Technical Skills", Percentage: 75, Color: "#8B5CF6"},
				{Skill: "Problem Solving", Percentage: 72, Color: "#EC4899"},
				{Skill: "Communication", Percentage: 78, Color: "#06B6D4"},
				{Skill: "Analytical Thinking", Percentage: 74, Color: "#F59E0B"},
				{Skill: "Practical Knowledge", Percentage: 76, Color: "#10B981"},
				{Skill: "System Design", Percentage: 68, Color: "#6366F1"},
			},
			CategoryPerformance: []entities.CategoryPerformance{
				{Category: "DSA Reasoning", Score: 72, MaxScore: 100},
				{Category: "Coding Knowledge", Score: 75, MaxScore: 100},
				{Category: "Backend Fundamentals", Score: 76, MaxScore: 100},
				{Category: "System Design", Score: 68, MaxScore: 100},
				{Category: "Applied Problem Solving", Score: 74, MaxScore: 100},
				{Category: "Behavioral Skills", Score: 78, MaxScore: 100},
			},
			Strengths: []string{
				"Clear and articulate communication style",
				"Good understanding of backend fundamentals",
				"Demonstrated problem-solving approach",
				"Positive attitude and engagement",
			},
			Improvements: []string{
				"Provide more concrete examples with actual code",
				"Elaborate on edge cases and error handling",
				"Discuss system design tradeoffs more thoroughly",
				"Practice explaining complex concepts step-by-step",
			},
			Recommendation: "The candidate shows promise with solid fundamentals and good communication skills. Recommend moving to technical round for deeper assessment.",
			OverallScore:   75,
		},
		DifficultyScores: map[string]float64{
			"Easy":   85,
			"Medium": 75,
			"Hard":   65,
		},
	}
}
