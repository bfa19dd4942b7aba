package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "valid object unchanged",
			input: `{"transactions": []}`,
			want:  `{"transactions": []}`,
		},
		{
			name:  "valid array unchanged",
			input: `[{"amount": 5}]`,
			want:  `[{"amount": 5}]`,
		},
		{
			name:  "fenced block with language tag",
			input: "```json\n{\"amount\": 5}\n```",
			want:  `{"amount": 5}`,
		},
		{
			name:  "fenced block without language tag",
			input: "```\n{\"amount\": 5}\n```",
			want:  `{"amount": 5}`,
		},
		{
			name:  "object wrapped in prose",
			input: `Here is the result: {"transactions": [{"amount": 5}]} Hope that helps!`,
			want:  `{"transactions": [{"amount": 5}]}`,
		},
		{
			name:  "array wrapped in prose",
			input: `Sure! [1, 2, 3] is the answer.`,
			want:  `[1, 2, 3]`,
		},
		{
			name:  "nested structures balance correctly",
			input: `prefix {"a": {"b": [1, {"c": 2}]}} suffix`,
			want:  `{"a": {"b": [1, {"c": 2}]}}`,
		},
		{
			name:    "no JSON at all",
			input:   "I could not find any transactions in that text.",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			input:   `{"a": 1`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecoverJSON(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecoverJSONIdempotentOnValidInput(t *testing.T) {
	// Valid JSON must come back byte for byte, fences or prose around it
	// notwithstanding elsewhere.
	inputs := []string{
		`{"transactions": [{"date": "2024-01-01", "amount": 10, "description": "x"}]}`,
		`[]`,
		`{"nested": {"deep": [1, 2, {"three": true}]}}`,
		`"just a string"`,
		`42`,
	}

	for _, input := range inputs {
		got, err := RecoverJSON(input)
		require.NoError(t, err, "input: %s", input)
		assert.Equal(t, input, got, "input: %s", input)
	}
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing comma in object",
			input: `{"a": 1,}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "trailing comma in array",
			input: `[1, 2,]`,
			want:  `[1, 2]`,
		},
		{
			name:  "unquoted identifier keys",
			input: `{date: "2024-01-01", amount_due: 5}`,
			want:  `{"date": "2024-01-01", "amount_due": 5}`,
		},
		{
			name:  "single quoted strings",
			input: `{'a': 'b c'}`,
			want:  `{"a": "b c"}`,
		},
		{
			name:  "python literals",
			input: `{"a": None, "b": True, "c": False}`,
			want:  `{"a": null, "b": true, "c": false}`,
		},
		{
			name:  "missing comma between strings",
			input: `["a" "b"]`,
			want:  `["a", "b"]`,
		},
		{
			name:  "missing comma between objects",
			input: `[{"a": 1} {"b": 2}]`,
			want:  `[{"a": 1}, {"b": 2}]`,
		},
		{
			name:  "missing comma between arrays",
			input: `[[1] [2]]`,
			want:  `[[1], [2]]`,
		},
		{
			name:  "missing comma after number",
			input: `{"a": 1 "b": 2}`,
			want:  `{"a": 1, "b": 2}`,
		},
		{
			name:  "missing comma between string and object",
			input: `["a" {"b": 1}]`,
			want:  `["a", {"b": 1}]`,
		},
		{
			name:  "valid JSON untouched",
			input: `{"a": "it's fine, isn't it"}`,
			want:  `{"a": "it's fine, isn't it"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairJSON(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)), "repaired output should be valid JSON: %s", got)
		})
	}
}

func TestRepairJSONFixesModelOutput(t *testing.T) {
	// A typical sloppy payload: bare keys, single quotes, trailing comma.
	input := `{transactions: [{date: '2024-01-01', amount: 10,}]}`

	repaired := RepairJSON(input)
	require.True(t, json.Valid([]byte(repaired)), "repaired: %s", repaired)

	var payload struct {
		Transactions []struct {
			Date   string  `json:"date"`
			Amount float64 `json:"amount"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal([]byte(repaired), &payload))
	require.Len(t, payload.Transactions, 1)
	assert.Equal(t, "2024-01-01", payload.Transactions[0].Date)
	assert.InDelta(t, 10.0, payload.Transactions[0].Amount, 0.001)
}
