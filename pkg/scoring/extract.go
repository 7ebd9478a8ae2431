package scoring

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DecodeError means the structured payload could not be extracted or
// decoded from the generated text. It is not retried: the model would
// be asked the identical question and is unlikely to self-correct.
type DecodeError struct {
	Reason string
	Raw    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode scorer output: %s", e.Reason)
}

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJudgedItems pulls the fenced JSON array out of a free-text model
// reply, tolerating commentary around the block, and decodes it into
// judged items. Missing payloads and shape violations surface as a
// *DecodeError, never as a silently defaulted judgment.
func ExtractJudgedItems(raw string) ([]JudgedItem, error) {
	payload := raw
	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		payload = m[1]
	} else {
		// No fence: fall back to the outermost array, if any.
		start := strings.Index(raw, "[")
		end := strings.LastIndex(raw, "]")
		if start == -1 || end == -1 || end < start {
			return nil, &DecodeError{Reason: "no JSON payload found in reply", Raw: raw}
		}
		payload = raw[start : end+1]
	}

	var items []JudgedItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, &DecodeError{Reason: fmt.Sprintf("invalid JSON: %v", err), Raw: raw}
	}
	if len(items) == 0 {
		return nil, &DecodeError{Reason: "decoded payload is empty", Raw: raw}
	}

	for _, item := range items {
		if item.ID == "" {
			return nil, &DecodeError{Reason: "record with empty id", Raw: raw}
		}
		if item.Evaluation < -1 || item.Evaluation > 1 {
			return nil, &DecodeError{
				Reason: fmt.Sprintf("item %s has evaluation %d outside {-1,0,1}", item.ID, item.Evaluation),
				Raw:    raw,
			}
		}
	}
	return items, nil
}
