package llm

import "testing"

func TestCleanCompletion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "record profits quarterly earnings",
			want:  "record profits quarterly earnings",
		},
		{
			name:  "strips json fenced block",
			input: "```json\nEconomic\n```",
			want:  "Economic",
		},
		{
			name:  "strips plain fenced block",
			input: "```\nEconomic\n```",
			want:  "Economic",
		},
		{
			name:  "strips surrounding quotes",
			input: `"company x earnings report"`,
			want:  "company x earnings report",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  Economic  ",
			want:  "Economic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanCompletion(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
