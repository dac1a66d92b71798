package assistant

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeMessageContentList(t *testing.T) {
	resp := map[string]any{
		"message": map[string]any{
			"content": []any{
				map[string]any{"text": "hello"},
			},
		},
	}
	assert.Equal(t, "hello", Normalize(resp))
}

func TestNormalizeMessageContentListEntryWithoutText(t *testing.T) {
	resp := map[string]any{
		"message": map[string]any{
			"content": []any{"plain entry"},
		},
	}
	assert.Equal(t, "plain entry", Normalize(resp))
}

func TestNormalizeBareMessageString(t *testing.T) {
	assert.Equal(t, "hi", Normalize(map[string]any{"message": "hi"}))
}

func TestNormalizeDirectContentList(t *testing.T) {
	resp := map[string]any{
		"content": []any{
			map[string]any{"text": "from content"},
		},
	}
	assert.Equal(t, "from content", Normalize(resp))
}

func TestNormalizeDirectContentString(t *testing.T) {
	assert.Equal(t, "raw content", Normalize(map[string]any{"content": "raw content"}))
}

func TestNormalizeSchemaMessage(t *testing.T) {
	msg := schema.AssistantMessage("welcome to the store", nil)
	assert.Equal(t, "welcome to the store", Normalize(msg))
}

func TestNormalizePlainString(t *testing.T) {
	assert.Equal(t, "just text", Normalize("just text"))
}

func TestNormalizeArbitraryValueNeverEmpty(t *testing.T) {
	type opaque struct{ N int }

	for _, v := range []any{42, 3.14, opaque{N: 7}, []int{1, 2}, true} {
		out := Normalize(v)
		assert.NotEmpty(t, out, "Normalize(%v) returned empty string", v)
	}
}

func TestNormalizeNil(t *testing.T) {
	assert.Equal(t, "", Normalize(nil))

	var msg *schema.Message
	assert.Equal(t, "", Normalize(msg))
}
