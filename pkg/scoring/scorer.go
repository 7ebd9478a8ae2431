package scoring

import (
	"context"
	"fmt"
	"strings"

	"ikigai-interview-be/internal/constant"
	"ikigai-interview-be/internal/pkg/apperror"
	"ikigai-interview-be/pkg/llm"
	"ikigai-interview-be/pkg/retry"
	"ikigai-interview-be/pkg/rubric"
)

const scorerMaxTokens = 2048

// CategoryScorer judges one message against one rubric category. The
// scheduler depends on this interface so tests can substitute the upstream
// call.
type CategoryScorer interface {
	ScoreCategory(ctx context.Context, contextText, targetMessage string, category rubric.Category) ([]JudgedItem, error)
}

// Scorer asks the generation provider to classify each item of one
// category as positive/negative/unmentioned with a quoted justification.
type Scorer struct {
	provider llm.Provider
	policy   retry.Policy
}

var _ CategoryScorer = &Scorer{}

func NewScorer(provider llm.Provider, policy retry.Policy) *Scorer {
	return &Scorer{provider: provider, policy: policy}
}

// ScoreCategory returns exactly one judged item per rubric item of the
// category, in catalog order. Context grounds the model's understanding;
// evidence quotes are restricted to the target message.
func (s *Scorer) ScoreCategory(ctx context.Context, contextText, targetMessage string, category rubric.Category) ([]JudgedItem, error) {
	prompt := buildCategoryPrompt(contextText, targetMessage, category)

	reply, err := retry.Do(ctx, s.policy, func(ctx context.Context) (*llm.Reply, error) {
		return s.provider.Generate(ctx, prompt, llm.WithMaxTokens(scorerMaxTokens))
	})
	if err != nil {
		if retry.IsRateLimit(err) {
			return nil, apperror.Wrap(apperror.KindUpstreamTransient,
				"generation service rate limit persisted through retries", err).
				WithDetail("category_id", category.ID)
		}
		return nil, apperror.Wrap(apperror.KindInternal, "generation call failed", err).
			WithDetail("category_id", category.ID)
	}

	items, err := ExtractJudgedItems(reply.Text)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUpstreamMalformed,
			"could not decode judgments from generated text", err).
			WithDetail("category_id", category.ID)
	}

	return normalizeJudgedItems(items, category)
}

// normalizeJudgedItems reorders the decoded records to catalog order and
// rejects replies that miss items of the requested category.
func normalizeJudgedItems(items []JudgedItem, category rubric.Category) ([]JudgedItem, error) {
	byID := make(map[string]JudgedItem, len(items))
	for _, item := range items {
		byID[strings.ToUpper(strings.TrimSpace(item.ID))] = item
	}

	ordered := make([]JudgedItem, 0, len(category.Items))
	for _, rubricItem := range category.Items {
		judged, ok := byID[rubricItem.ID]
		if !ok {
			return nil, apperror.Wrap(apperror.KindUpstreamMalformed,
				"generated judgments are incomplete",
				&DecodeError{Reason: fmt.Sprintf("missing item %s", rubricItem.ID)}).
				WithDetail("category_id", category.ID)
		}
		judged.ID = rubricItem.ID
		ordered = append(ordered, judged)
	}
	return ordered, nil
}

func buildCategoryPrompt(contextText, targetMessage string, category rubric.Category) string {
	var b strings.Builder
	b.WriteString(constant.AnalysisPromptHeaderV1)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("カテゴリと項目:\n\n【%s】%s\n", category.ID, category.Name))
	for _, item := range category.Items {
		b.WriteString(fmt.Sprintf("%s: %s\n", item.ID, item.Statement))
	}
	b.WriteString("\n")

	if contextText != "" {
		b.WriteString("会話の文脈（理解のためのみに使用すること）:\n")
		b.WriteString(contextText)
		b.WriteString("\n\n")
	}

	b.WriteString("分析対象メッセージ（根拠の引用はここからのみ）:\n")
	b.WriteString(targetMessage)
	b.WriteString("\n\n")

	b.WriteString(constant.AnalysisPromptFooterV1)
	return b.String()
}
