package survey

import (
	"fmt"
	"log/slog"
	"sort"

	"limeharvest/lib/limerpc"
	"limeharvest/lib/textutil"
)

// Question is one survey item held in a Hierarchy arena. Parent and child
// relations are stored as qids and resolved through the arena, never as
// direct object references, so there are no cycles to manage.
type Question struct {
	Raw limerpc.RawQuestion

	parentId int // 0 when root level
	childIds []int
}

func (q *Question) Id() int      { return q.Raw.Qid }
func (q *Question) Gid() int     { return q.Raw.Gid }
func (q *Question) Sid() int     { return q.Raw.Sid }
func (q *Question) Type() string { return q.Raw.Type }

func (q *Question) IsChild() bool     { return q.parentId != 0 }
func (q *Question) HasChildren() bool { return len(q.childIds) > 0 }

// Text is the cleaned question text.
func (q *Question) Text() string {
	return textutil.CleanQuestionText(q.Raw.Question)
}

// Hierarchy owns every question of one survey plus the links between them.
// Linking is a single pass: the hierarchy is at most one level deep, so
// there is no fixpoint to iterate. The title index is only built once every
// parent link exists, because a display title is undefined before then.
type Hierarchy struct {
	byId    map[int]*Question
	byTitle map[string]*Question
	groups  map[string]*QuestionGroup
}

// BuildHierarchy links parent/child question pairs and materializes one
// QuestionGroup per parent with children. A parent_qid that points outside
// the loaded set means the question is root level, not an error.
func BuildHierarchy(raw []limerpc.RawQuestion) *Hierarchy {
	h := &Hierarchy{
		byId:    make(map[int]*Question, len(raw)),
		byTitle: make(map[string]*Question, len(raw)),
		groups:  map[string]*QuestionGroup{},
	}
	for _, r := range raw {
		h.byId[r.Qid] = &Question{Raw: r}
	}

	for _, q := range h.byId {
		parent, ok := h.byId[q.Raw.ParentQid]
		if !ok {
			continue
		}
		q.parentId = parent.Id()
		parent.childIds = append(parent.childIds, q.Id())
	}
	for _, q := range h.byId {
		sort.Ints(q.childIds)
	}

	for _, q := range h.byId {
		if !q.HasChildren() {
			continue
		}
		key := h.Title(q)
		if _, ok := h.groups[key]; !ok {
			slog.Info("creating question group", "key", key)
			h.groups[key] = &QuestionGroup{h: h, parentId: q.Id()}
		}
	}

	for _, q := range h.byId {
		h.byTitle[h.Title(q)] = q
	}
	return h
}

// Title is the display title of a question: "parent[own]" for
// sub-questions, the plain base title otherwise. It is derived from current
// parent state on every call, never stored.
func (h *Hierarchy) Title(q *Question) string {
	if q.parentId != 0 {
		if parent, ok := h.byId[q.parentId]; ok {
			return fmt.Sprintf("%s[%s]", parent.Raw.Title, q.Raw.Title)
		}
	}
	return q.Raw.Title
}

func (h *Hierarchy) Len() int {
	return len(h.byId)
}

func (h *Hierarchy) Question(qid int) (*Question, bool) {
	q, ok := h.byId[qid]
	return q, ok
}

func (h *Hierarchy) QuestionByTitle(title string) (*Question, bool) {
	q, ok := h.byTitle[title]
	return q, ok
}

func (h *Hierarchy) Parent(q *Question) (*Question, bool) {
	if q.parentId == 0 {
		return nil, false
	}
	parent, ok := h.byId[q.parentId]
	return parent, ok
}

// Children resolves the sub-questions of q through the arena, ordered by
// qid.
func (h *Hierarchy) Children(q *Question) []*Question {
	children := make([]*Question, 0, len(q.childIds))
	for _, id := range q.childIds {
		if child, ok := h.byId[id]; ok {
			children = append(children, child)
		}
	}
	return children
}

// Questions returns every question sorted by display title.
func (h *Hierarchy) Questions() []*Question {
	questions := make([]*Question, 0, len(h.byId))
	for _, q := range h.byId {
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool {
		return h.Title(questions[i]) < h.Title(questions[j])
	})
	return questions
}

func (h *Hierarchy) Group(key string) (*QuestionGroup, bool) {
	g, ok := h.groups[key]
	return g, ok
}

// Groups returns every question group sorted by key.
func (h *Hierarchy) Groups() []*QuestionGroup {
	groups := make([]*QuestionGroup, 0, len(h.groups))
	for _, g := range h.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key() < groups[j].Key()
	})
	return groups
}
