package survey

import (
	"fmt"
	"sort"
	"strconv"
)

// Table is one named tabular view handed to export sinks. Sinks only ever
// see these three views; everything else about the survey stays internal.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Tables renders the named views every export sink consumes: "Responses",
// "Questions" and "Question Groups".
func (s *Survey) Tables() []Table {
	return []Table{
		s.responsesTable(),
		s.questionsTable(),
		s.questionGroupsTable(),
	}
}

// one row per response, one column per field. Column order is id first,
// then lexicographic: json objects decode into unordered maps, so the
// server's field order is gone by the time rows are built and a stable
// order matters more to the sinks.
func (s *Survey) responsesTable() Table {
	columnSet := map[string]bool{}
	for _, r := range s.Responses {
		for k := range r.Data() {
			columnSet[k] = true
		}
	}
	delete(columnSet, "id")

	columns := make([]string, 0, len(columnSet)+1)
	for k := range columnSet {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	columns = append([]string{"id"}, columns...)

	rows := make([][]string, 0, len(s.Responses))
	for _, r := range s.Responses {
		row := make([]string, len(columns))
		row[0] = strconv.Itoa(r.Id())
		for i, col := range columns[1:] {
			if v, ok := r.Data()[col]; ok && v != nil {
				row[i+1] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return Table{Name: "Responses", Columns: columns, Rows: rows}
}

// one row per question sorted by display title.
func (s *Survey) questionsTable() Table {
	columns := []string{"title", "qid", "sid", "gid", "type", "text"}

	questions := s.Hierarchy.Questions()
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []string{
			s.Hierarchy.Title(q),
			strconv.Itoa(q.Id()),
			strconv.Itoa(q.Sid()),
			strconv.Itoa(q.Gid()),
			q.Type(),
			q.Text(),
		})
	}
	return Table{Name: "Questions", Columns: columns, Rows: rows}
}

// one row per question group sorted by key, with the option list flattened
// into a single cell.
func (s *Survey) questionGroupsTable() Table {
	columns := []string{"key", "question", "options"}

	groups := s.Hierarchy.Groups()
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key(),
			g.QuestionText(),
			g.FlattenedOptions(),
		})
	}
	return Table{Name: "Question Groups", Columns: columns, Rows: rows}
}
