package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalFormula(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		count   int64
		want    float64
		wantErr error
	}{
		{name: "linear", formula: "count * 0.5", count: 100, want: 50},
		{name: "flat fee plus rate", formula: "10 + count * 0.25", count: 40, want: 20},
		{name: "parentheses", formula: "(count + 10) * 2", count: 5, want: 30},
		{name: "precedence", formula: "2 + 3 * 4", count: 0, want: 14},
		{name: "division", formula: "count / 4", count: 100, want: 25},
		{name: "unary minus", formula: "-count + 100", count: 30, want: 70},
		{name: "nested parens", formula: "((count))", count: 7, want: 7},
		{name: "whitespace", formula: "  count   *  2 ", count: 3, want: 6},

		{name: "function call rejected", formula: "count * 0.5 + garbage()", count: 10, wantErr: errBadFormula},
		{name: "letters rejected", formula: "count * price", count: 10, wantErr: errBadFormula},
		{name: "comparison rejected", formula: "count > 100", count: 10, wantErr: errBadFormula},
		{name: "dangling operator", formula: "count *", count: 10, wantErr: errBadSyntax},
		{name: "unbalanced paren", formula: "(count * 2", count: 10, wantErr: errBadSyntax},
		{name: "empty", formula: "", count: 10, wantErr: errBadSyntax},
		{name: "division by zero", formula: "count / 0", count: 10, wantErr: errDivideByZero},
		{name: "division by zero expr", formula: "1 / (count - 5)", count: 5, wantErr: errDivideByZero},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := evalFormula(tc.formula, tc.count)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
