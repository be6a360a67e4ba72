package models

type AnswerCounts struct {
	All    int64 `json:"all"`
	Unique int64 `json:"unique"`
}

// DistributionEntry: Value is the matching quiz item, or the raw stored answer value
// when the quiz no longer defines that item.
type DistributionEntry struct {
	Value interface{} `json:"value"`
	Count int64       `json:"count"`
}

type QuizStats struct {
	AnswerCounts       AnswerCounts        `json:"answerCounts"`
	AnswerDistribution []DistributionEntry `json:"answerDistribution"`
}
