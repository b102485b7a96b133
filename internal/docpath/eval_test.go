package docpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	doc := sampleDocument()

	tests := []struct {
		expression string
		want       any
	}{
		{"education.items[0].name", "X"},
		{"data.education.heading", "Education"},
		{"len(education.items)", 2},
		{"map(education.items, .major)", []any{"Y", "Physics"}},
		{"work.items[0].title == 'Acme'", true},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := Eval(doc, tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	doc := sampleDocument()

	_, err := Eval(doc, "")
	assert.Error(t, err)

	_, err = Eval(doc, "education.items[")
	assert.Error(t, err)

	_, err = Eval([]string{"not", "an", "object"}, "len(x)")
	assert.Error(t, err)
}
