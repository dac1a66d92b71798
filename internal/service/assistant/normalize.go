package assistant

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
)

// Normalize extracts a plain-text reply from whichever shape the agent
// boundary produced. Providers and SDK versions do not agree on a single
// response shape, so extraction falls through an ordered set of cases and
// always ends in a string.
func Normalize(v any) string {
	switch resp := v.(type) {
	case nil:
		return ""
	case *schema.Message:
		if resp == nil {
			return ""
		}
		return resp.Content
	case schema.Message:
		return resp.Content
	case string:
		return resp
	case map[string]any:
		if message, ok := resp["message"]; ok {
			return normalizeMessage(message)
		}
		if content, ok := resp["content"]; ok {
			return extractContent(content)
		}
		return stringify(resp)
	default:
		return stringify(v)
	}
}

// normalizeMessage handles a response that wraps its payload in a message
// envelope: a keyed structure with a content list yields the first entry's
// text, anything else is stringified.
func normalizeMessage(message any) string {
	if keyed, ok := message.(map[string]any); ok {
		if content, ok := keyed["content"]; ok {
			return extractContent(content)
		}
	}
	return stringify(message)
}

// extractContent takes the first entry of a content list, preferring its
// "text" field; non-list content is stringified directly.
func extractContent(content any) string {
	if list, ok := content.([]any); ok && len(list) > 0 {
		first := list[0]
		if keyed, ok := first.(map[string]any); ok {
			if text, ok := keyed["text"].(string); ok {
				return text
			}
		}
		return stringify(first)
	}
	return stringify(content)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
