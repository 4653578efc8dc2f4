package extract

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			input: `{"industry": ["Technology"]}`,
			want:  `{"industry": ["Technology"]}`,
			found: true,
		},
		{
			name:  "markdown fenced",
			input: "Here you go:\n```json\n{\"industry\": [\"Retail\"]}\n```\nHope that helps!",
			want:  `{"industry": ["Retail"]}`,
			found: true,
		},
		{
			name:  "leading prose",
			input: `Sure! The categorization is {"company_size": ["Startup"]} as requested.`,
			want:  `{"company_size": ["Startup"]}`,
			found: true,
		},
		{
			name:  "nested objects",
			input: `{"a": {"b": {"c": 1}}}`,
			want:  `{"a": {"b": {"c": 1}}}`,
			found: true,
		},
		{
			name:  "braces inside strings",
			input: `{"note": "uses {curly} braces", "industry": ["Finance"]}`,
			want:  `{"note": "uses {curly} braces", "industry": ["Finance"]}`,
			found: true,
		},
		{
			name:  "escaped quote inside string",
			input: `{"note": "he said \"hi}\" once"}`,
			want:  `{"note": "he said \"hi}\" once"}`,
			found: true,
		},
		{
			name:  "unterminated object",
			input: `{"industry": ["Technology"`,
			found: false,
		},
		{
			name:  "no object at all",
			input: "I cannot categorize this business.",
			found: false,
		},
		{
			name:  "empty input",
			input: "",
			found: false,
		},
		{
			name:  "first of two objects wins",
			input: `{"a": 1} {"b": 2}`,
			want:  `{"a": 1}`,
			found: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := extractJSONObject(tc.input)
			if found != tc.found {
				t.Fatalf("found = %v, want %v", found, tc.found)
			}
			if found && got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
