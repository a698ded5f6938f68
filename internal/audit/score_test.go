package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "bare json",
			text: `{"cumple": false, "score_conformidad": 0.42}`,
			want: 0.42,
		},
		{
			name: "json embedded in prose",
			text: "Here is my assessment:\n```json\n{\"score_conformidad\": 0.42, \"razones\": []}\n```\nDone.",
			want: 0.42,
		},
		{
			name: "no json at all",
			text: "The image looks broadly on-brand.",
			want: 0.8,
		},
		{
			name: "empty response",
			text: "",
			want: 0.8,
		},
		{
			name: "json without score field",
			text: `{"cumple": true, "razones": ["good colors"]}`,
			want: 0.8,
		},
		{
			name: "malformed json",
			text: `{"score_conformidad": 0.9,`,
			want: 0.8,
		},
		{
			name: "score above one is clamped",
			text: `{"score_conformidad": 3.5}`,
			want: 1,
		},
		{
			name: "negative score is clamped",
			text: `{"score_conformidad": -0.2}`,
			want: 0,
		},
		{
			name: "braces inside string literal do not close the object",
			text: `{"analisis_detallado": "uses {curly} motifs", "score_conformidad": 0.55}`,
			want: 0.55,
		},
		{
			name: "explicit zero is kept",
			text: `{"score_conformidad": 0}`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, ExtractScore(tt.text), 1e-9)
		})
	}
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-1))
	require.Equal(t, 1.0, Clamp(2))
	require.Equal(t, 0.7, Clamp(0.7))
}
