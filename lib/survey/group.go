package survey

import (
	"fmt"
	"sort"
	"strings"
)

// QuestionGroup is a view over a parent question with at least one child
// sub-question, treated as one logical multi-valued field. It is not a
// question of its own; everything it exposes is resolved through the arena.
type QuestionGroup struct {
	h        *Hierarchy
	parentId int
}

func (g *QuestionGroup) Parent() *Question {
	parent, _ := g.h.Question(g.parentId)
	return parent
}

// Key is the parent's display title.
func (g *QuestionGroup) Key() string {
	return g.h.Title(g.Parent())
}

// QuestionText is the parent's cleaned question text.
func (g *QuestionGroup) QuestionText() string {
	return g.Parent().Text()
}

func (g *QuestionGroup) Children() []*Question {
	return g.h.Children(g.Parent())
}

// Value computes the aggregate answer of the group for one response: the
// cleaned text of every selected sub-question, sorted lexicographically,
// with the free-text "other" answer appended last when present. A
// sub-question answered with the literal sentinel "N/A" (or not answered at
// all) is not selected.
func (g *QuestionGroup) Value(r Response) []string {
	var values []string
	for _, sq := range g.Children() {
		answer, ok := r.Answer(g.h.Title(sq))
		if !ok || answer == "N/A" {
			continue
		}
		values = append(values, sq.Text())
	}
	sort.Strings(values)

	if other, ok := g.OtherValue(r); ok {
		values = append(values, other)
	}
	return values
}

// OtherValue reads the free-text answer keyed "{key}[other]". A missing
// key, an empty value, or the literal string "None" means there is none;
// all three are expected, silently handled paths.
func (g *QuestionGroup) OtherValue(r Response) (string, bool) {
	value, ok := r.Answer(g.Key() + "[other]")
	if !ok || value == "" || value == "None" {
		return "", false
	}
	return value, true
}

// FlattenedOptions renders the sub-questions as "title) text" lines,
// ordered by display title, for the Question Groups table.
func (g *QuestionGroup) FlattenedOptions() string {
	children := g.Children()
	sort.Slice(children, func(i, j int) bool {
		return g.h.Title(children[i]) < g.h.Title(children[j])
	})

	lines := make([]string, 0, len(children))
	for _, sq := range children {
		lines = append(lines, fmt.Sprintf("%s) %s", g.h.Title(sq), sq.Text()))
	}
	return strings.Join(lines, "\n")
}
