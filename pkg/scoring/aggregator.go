package scoring

import (
	"sort"
	"strings"

	"ikigai-interview-be/internal/constant"
	"ikigai-interview-be/pkg/llm"
	"ikigai-interview-be/pkg/rubric"
)

const evidenceSeparator = " / "

// OverallEvaluation reduces a list of mentions to one item verdict: any
// positive mention wins over negatives regardless of counts or recency,
// any negative wins over none.
func OverallEvaluation(mentions []Mention) int {
	overall := 0
	for _, m := range mentions {
		if m.Evaluation > 0 {
			return 1
		}
		if m.Evaluation < 0 {
			overall = -1
		}
	}
	return overall
}

// Aggregate merges partial results from every message into one final
// result. The fold is commutative over arrival order: partials are
// replayed in message-index order, so a given set of inputs always yields
// the same output.
func Aggregate(partials map[int]*PartialResult, conversation []llm.Message) *AnalysisResult {
	itemsByID := make(map[string]*AnalysisItem, rubric.TotalItems())
	for _, category := range rubric.Categories() {
		for _, rubricItem := range category.Items {
			itemsByID[rubricItem.ID] = &AnalysisItem{
				ID:   rubricItem.ID,
				Item: rubricItem.Statement,
			}
		}
	}

	indices := make([]int, 0, len(partials))
	for idx := range partials {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		partial := partials[idx]
		for _, judgedItems := range partial.Judgments {
			for _, judged := range judgedItems {
				if judged.Evaluation == 0 {
					continue
				}
				item, ok := itemsByID[judged.ID]
				if !ok {
					continue
				}
				item.Mentions = append(item.Mentions, Mention{
					MessageIndex:   partial.MessageIndex,
					Evaluation:     judged.Evaluation,
					Evidence:       judged.Evidence,
					MessageContent: partial.MessageContent,
				})
			}
		}
	}

	categories := make(map[string]AnalysisCategory, len(rubric.Categories()))
	for _, category := range rubric.Categories() {
		finalItems := make([]AnalysisItem, 0, len(category.Items))
		positive, negative := 0, 0

		for _, rubricItem := range category.Items {
			item := itemsByID[rubricItem.ID]
			item.Evaluation = OverallEvaluation(item.Mentions)
			item.Evidence = combineEvidence(item.Mentions)

			switch item.Evaluation {
			case 1:
				positive++
			case -1:
				negative++
			}
			finalItems = append(finalItems, *item)
		}

		categories[category.ID] = AnalysisCategory{
			Name:          category.Name,
			Items:         finalItems,
			PositiveCount: positive,
			NegativeCount: negative,
		}
	}

	return &AnalysisResult{
		Categories: categories,
		Transcript: RenderTranscript(conversation),
	}
}

func combineEvidence(mentions []Mention) string {
	if len(mentions) == 0 {
		return constant.NoMentionMarker
	}
	quotes := make([]string, len(mentions))
	for i, m := range mentions {
		quotes[i] = m.Evidence
	}
	return strings.Join(quotes, evidenceSeparator)
}

// RenderTranscript maps every turn except the bootstrap prompt to
// "<role label>: <content>" joined by blank lines, preserving order.
func RenderTranscript(conversation []llm.Message) string {
	lines := make([]string, 0, len(conversation))
	for _, msg := range conversation {
		if msg.Content == constant.BootstrapUserPromptV1 {
			continue
		}
		label := constant.TranscriptLabelUser
		if msg.Role == constant.ChatRoleAssistant {
			label = constant.TranscriptLabelAssistant
		}
		lines = append(lines, label+": "+msg.Content)
	}
	return strings.Join(lines, "\n\n")
}
