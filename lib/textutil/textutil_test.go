package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanQuestionText(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "control characters become spaces",
			in:       "Hello\nWorld\tfoo\rbar",
			expected: "Hello World foo bar",
		},
		{
			name:     "single tag span collapses",
			in:       `click <a href="x">here</a> now`,
			expected: "click now",
		},
		{
			// the span runs greedily from the first "<" to the last ">",
			// so independent tags on one line take their contents with
			// them. preserved behavior.
			name:     "multiple tags collapse into one span",
			in:       "a <b>bold</b> and <i>italic</i> z",
			expected: "a z",
		},
		{
			name:     "space runs are squeezed",
			in:       "a    b  c",
			expected: "a b c",
		},
		{
			name:     "plain text untouched",
			in:       "What is your favorite color?",
			expected: "What is your favorite color?",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, CleanQuestionText(test.in))
		})
	}
}
