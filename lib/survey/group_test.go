package survey

import (
	"testing"

	"limeharvest/lib/limerpc"

	"github.com/stretchr/testify/require"
)

func matrixGroup(t *testing.T) *QuestionGroup {
	h := BuildHierarchy(matrixQuestions())
	g, ok := h.Group("Q1")
	require.True(t, ok)
	return g
}

func TestGroupValueExcludesUnselected(t *testing.T) {
	g := matrixGroup(t)

	r := NewResponse(limerpc.ResponseRecord{
		"Q1[A]":     "N/A",
		"Q1[B]":     "Yes",
		"Q1[other]": "None",
	})

	require.Equal(t, []string{"Option B"}, g.Value(r))
}

func TestGroupValueMissingSubAnswerIsUnselected(t *testing.T) {
	g := matrixGroup(t)

	r := NewResponse(limerpc.ResponseRecord{
		"Q1[B]": "Yes",
	})

	require.Equal(t, []string{"Option B"}, g.Value(r))
}

func TestGroupValueSortsSelections(t *testing.T) {
	g := matrixGroup(t)

	r := NewResponse(limerpc.ResponseRecord{
		"Q1[A]": "Yes",
		"Q1[B]": "Yes",
	})

	require.Equal(t, []string{"Option A", "Option B"}, g.Value(r))
}

func TestGroupValueOtherOnly(t *testing.T) {
	g := matrixGroup(t)

	r := NewResponse(limerpc.ResponseRecord{
		"Q1[A]":     "N/A",
		"Q1[B]":     "N/A",
		"Q1[other]": "Some text",
	})

	require.Equal(t, []string{"Some text"}, g.Value(r))
}

func TestGroupValueOtherAppendsLast(t *testing.T) {
	g := matrixGroup(t)

	// "AAA" sorts before "Option B" but the free-text answer still goes last
	r := NewResponse(limerpc.ResponseRecord{
		"Q1[B]":     "Yes",
		"Q1[other]": "AAA",
	})

	require.Equal(t, []string{"Option B", "AAA"}, g.Value(r))
}

func TestGroupOtherValue(t *testing.T) {
	g := matrixGroup(t)

	testCases := []struct {
		name     string
		record   limerpc.ResponseRecord
		expected string
		ok       bool
	}{
		{name: "present", record: limerpc.ResponseRecord{"Q1[other]": "hi"}, expected: "hi", ok: true},
		{name: "missing key", record: limerpc.ResponseRecord{}},
		{name: "empty", record: limerpc.ResponseRecord{"Q1[other]": ""}},
		{name: "none sentinel", record: limerpc.ResponseRecord{"Q1[other]": "None"}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			value, ok := g.OtherValue(NewResponse(test.record))
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.expected, value)
		})
	}
}

func TestGroupFlattenedOptions(t *testing.T) {
	g := matrixGroup(t)

	require.Equal(t, "Q1[A]) Option A\nQ1[B]) Option B", g.FlattenedOptions())
}
