package survey

import (
	"testing"

	"limeharvest/lib/limerpc"

	"github.com/stretchr/testify/require"
)

func matrixQuestions() []limerpc.RawQuestion {
	return []limerpc.RawQuestion{
		{Qid: 1, Sid: 9, Gid: 2, Type: "M", Title: "Q1", Question: "Pick some", ParentQid: 0},
		{Qid: 2, Sid: 9, Gid: 2, Type: "T", Title: "A", Question: "Option A", ParentQid: 1},
		{Qid: 3, Sid: 9, Gid: 2, Type: "T", Title: "B", Question: "Option B", ParentQid: 1},
	}
}

func TestBuildHierarchyLinksParents(t *testing.T) {
	h := BuildHierarchy(matrixQuestions())
	require.Equal(t, 3, h.Len())

	parent, ok := h.Question(1)
	require.True(t, ok)
	require.True(t, parent.HasChildren())
	require.False(t, parent.IsChild())
	require.Equal(t, "Q1", h.Title(parent))

	childA, ok := h.Question(2)
	require.True(t, ok)
	require.False(t, childA.HasChildren())
	require.True(t, childA.IsChild())
	require.Equal(t, "Q1[A]", h.Title(childA))

	childB, ok := h.Question(3)
	require.True(t, ok)
	require.Equal(t, "Q1[B]", h.Title(childB))

	linkedParent, ok := h.Parent(childA)
	require.True(t, ok)
	require.Same(t, parent, linkedParent)

	children := h.Children(parent)
	require.Len(t, children, 2)
	require.Same(t, childA, children[0])
	require.Same(t, childB, children[1])
}

func TestBuildHierarchyMaterializesGroups(t *testing.T) {
	h := BuildHierarchy(matrixQuestions())

	groups := h.Groups()
	require.Len(t, groups, 1)
	require.Equal(t, "Q1", groups[0].Key())
	require.Equal(t, "Pick some", groups[0].QuestionText())
	require.Len(t, groups[0].Children(), 2)

	// group existence is exactly has_children
	_, ok := h.Group("Q1[A]")
	require.False(t, ok)
}

func TestBuildHierarchyTitleIndex(t *testing.T) {
	h := BuildHierarchy(matrixQuestions())

	q, ok := h.QuestionByTitle("Q1[A]")
	require.True(t, ok)
	require.Equal(t, 2, q.Id())

	// the bare child title is not indexed once the question is linked
	_, ok = h.QuestionByTitle("A")
	require.False(t, ok)
}

func TestBuildHierarchyOrphanParentIsRoot(t *testing.T) {
	h := BuildHierarchy([]limerpc.RawQuestion{
		{Qid: 1, Title: "Q1", Question: "text", ParentQid: 99},
	})

	q, ok := h.Question(1)
	require.True(t, ok)
	require.False(t, q.IsChild())
	require.Equal(t, "Q1", h.Title(q))
	require.Empty(t, h.Groups())
}

func TestQuestionsSortedByTitle(t *testing.T) {
	h := BuildHierarchy([]limerpc.RawQuestion{
		{Qid: 10, Title: "Zeta", Question: "z"},
		{Qid: 11, Title: "Alpha", Question: "a"},
	})

	questions := h.Questions()
	require.Len(t, questions, 2)
	require.Equal(t, "Alpha", h.Title(questions[0]))
	require.Equal(t, "Zeta", h.Title(questions[1]))
}

func TestQuestionTextIsCleaned(t *testing.T) {
	h := BuildHierarchy([]limerpc.RawQuestion{
		{Qid: 1, Title: "Q1", Question: "What do\nyou <b>really</b> think?"},
	})

	q, _ := h.Question(1)
	require.Equal(t, "What do you think?", q.Text())
}
