package draft

import (
	"encoding/json"
	"regexp"
	"strings"
)

// replyKey is the conversational field the model is instructed to always
// include next to the draft schema. It is never merged into the draft.
const replyKey = "conversation_result"

// fallbackReply is used when a structured response carries no usable
// conversational text.
const fallbackReply = "Noted. What else should go into the protocol?"

var fencedJSONBlock = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// Result is the outcome of extracting structure from one completion.
// Either Structured is true and Delta/Reply are set, or the whole raw text
// is carried as the Reply with no draft change.
type Result struct {
	Structured bool
	Delta      map[string]any
	Reply      string
}

// Extract pulls a JSON object out of raw model output. It tries, in order:
// the first ```json fenced block, then the entire text as JSON. When both
// fail the raw text becomes the reply so the conversation never stalls on a
// malformed response.
func Extract(raw string) Result {
	if m := fencedJSONBlock.FindStringSubmatch(raw); m != nil {
		if obj := parseObject(m[1]); obj != nil {
			return structured(obj)
		}
	}

	if obj := parseObject(raw); obj != nil {
		return structured(obj)
	}

	return Result{Reply: raw}
}

func structured(obj map[string]any) Result {
	reply := fallbackReply
	if v, ok := obj[replyKey]; ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			reply = s
		}
		delete(obj, replyKey)
	}
	return Result{Structured: true, Delta: obj, Reply: reply}
}

func parseObject(s string) map[string]any {
	s = strings.TrimSpace(s)
	if s == "" || !strings.HasPrefix(s, "{") {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}
