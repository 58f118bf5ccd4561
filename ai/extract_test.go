package ai

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			raw:  `{"title": "hello"}`,
			want: `{"title": "hello"}`,
		},
		{
			name: "markdown fenced",
			raw:  "```json\n{\"title\": \"hello\"}\n```",
			want: `{"title": "hello"}`,
		},
		{
			name: "surrounded by prose",
			raw:  `Here is your task: {"title": "hello"} Let me know if you need more.`,
			want: `{"title": "hello"}`,
		},
		{
			name: "nested objects",
			raw:  `{"a": {"b": 1}, "c": 2}`,
			want: `{"a": {"b": 1}, "c": 2}`,
		},
		{
			name: "braces inside string values",
			raw:  `{"title": "use {curly} braces"}`,
			want: `{"title": "use {curly} braces"}`,
		},
		{
			name: "escaped quote inside string",
			raw:  `{"title": "say \"hi\" {ok}"}`,
			want: `{"title": "say \"hi\" {ok}"}`,
		},
		{
			name:    "no object at all",
			raw:     "I could not produce a task for that input.",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			raw:     `{"title": "hello"`,
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
