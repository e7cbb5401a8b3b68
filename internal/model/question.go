package model

// Question is one multiple-choice quiz question as served by the remote
// backend. The option strings are displayed in the order received.
type Question struct {
	ID      int64    `json:"id"`
	Number  int      `json:"number"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// AnswerResult is the scoring authority's verdict for one submitted answer.
type AnswerResult struct {
	IsCorrect bool `json:"is_correct"`
}
