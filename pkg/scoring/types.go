package scoring

// JudgedItem is the raw judgment of one rubric item from a single
// (message, category) scoring call.
type JudgedItem struct {
	ID         string `json:"id"`
	Item       string `json:"item"`
	Evaluation int    `json:"evaluation"` // -1, 0, +1
	Evidence   string `json:"evidence"`
}

// PartialResult holds the judgments of one user message across all
// categories. It lives in the session's partial-analysis store until
// finalization folds it into the final result.
type PartialResult struct {
	MessageIndex   int                     `json:"message_index"`
	MessageContent string                  `json:"message_content"`
	Judgments      map[string][]JudgedItem `json:"judgments"` // category id -> 10 judged items
}

// Mention is a non-neutral judgment tied to one message and one rubric
// item. Evaluation is -1 or +1, never 0.
type Mention struct {
	MessageIndex   int    `json:"message_index"`
	Evaluation     int    `json:"evaluation"`
	Evidence       string `json:"evidence"`
	MessageContent string `json:"message_content"`
}

// AnalysisItem is the final verdict for one rubric item.
type AnalysisItem struct {
	ID         string    `json:"id"`
	Item       string    `json:"item"`
	Mentions   []Mention `json:"mentions"`
	Evaluation int       `json:"evaluation"` // +1 if any positive mention, else -1 if any negative, else 0
	Evidence   string    `json:"evidence"`   // combined evidence, or the no-mention marker
}

// AnalysisCategory groups the 10 final items of one category. Counts are
// derived from the items' evaluations.
type AnalysisCategory struct {
	Name          string         `json:"name"`
	Items         []AnalysisItem `json:"items"`
	PositiveCount int            `json:"positive_count"`
	NegativeCount int            `json:"negative_count"`
}

// AnalysisResult is the immutable outcome of a full analysis run.
type AnalysisResult struct {
	Categories map[string]AnalysisCategory `json:"categories"` // "A".."E"
	Transcript string                      `json:"transcript"`
}
