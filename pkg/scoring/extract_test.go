package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJudgedItems(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantItems int
		wantErr   string
	}{
		{
			name: "fenced json block with commentary",
			raw: "以下が分析結果です。\n```json\n[{\"id\":\"A1\",\"item\":\"x\",\"evaluation\":1,\"evidence\":\"研究が楽しい\"}]\n```\nご確認ください。",
			wantItems: 1,
		},
		{
			name:      "fence without language tag",
			raw:       "```\n[{\"id\":\"B2\",\"item\":\"y\",\"evaluation\":-1,\"evidence\":\"\"}]\n```",
			wantItems: 1,
		},
		{
			name:      "bare array without fence",
			raw:       "result: [{\"id\":\"A1\",\"item\":\"x\",\"evaluation\":0,\"evidence\":\"\"}] done",
			wantItems: 1,
		},
		{
			name:    "no payload at all",
			raw:     "申し訳ありませんが、分析できませんでした。",
			wantErr: "no JSON payload",
		},
		{
			name:    "invalid json inside fence",
			raw:     "```json\n[{\"id\":\"A1\",]\n```",
			wantErr: "invalid JSON",
		},
		{
			name:    "empty array",
			raw:     "```json\n[]\n```",
			wantErr: "empty",
		},
		{
			name:    "record missing id",
			raw:     "```json\n[{\"item\":\"x\",\"evaluation\":1,\"evidence\":\"q\"}]\n```",
			wantErr: "empty id",
		},
		{
			name:    "evaluation out of range",
			raw:     "```json\n[{\"id\":\"A1\",\"item\":\"x\",\"evaluation\":2,\"evidence\":\"q\"}]\n```",
			wantErr: "outside",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ExtractJudgedItems(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Contains(t, decodeErr.Reason, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantItems)
		})
	}
}

func TestExtractJudgedItemsKeepsFields(t *testing.T) {
	raw := "```json\n[{\"id\":\"E10\",\"item\":\"小さな幸せ\",\"evaluation\":1,\"evidence\":\"子どもと遊ぶと元気が出ます\"}]\n```"

	items, err := ExtractJudgedItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "E10", items[0].ID)
	assert.Equal(t, 1, items[0].Evaluation)
	assert.Equal(t, "子どもと遊ぶと元気が出ます", items[0].Evidence)
}
