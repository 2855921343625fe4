package survey

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"limeharvest/lib/limerpc"
	"limeharvest/lib/telemetry"

	"github.com/stretchr/testify/require"
)

// fakeSurveyServer serves the handful of remote control methods Load
// needs, with fixture data for one small matrix survey.
func fakeSurveyServer(t *testing.T) *httptest.Server {
	document := `{"responses":[` +
		`{"2":{"id":2,"Q1[A]":"Yes","Q1[B]":"N/A","Q1[other]":"None"}},` +
		`{"1":{"id":1,"Q1[A]":"N/A","Q1[B]":"Yes","Q1[other]":"hand written"}}` +
		`]}`

	results := map[string]any{
		"get_session_key":       "fixture-session",
		"get_survey_properties": map[string]any{"sid": "9"},
		"get_language_properties": map[string]any{
			"surveyls_title": "Fixture Survey",
		},
		"list_questions": []map[string]any{
			{"qid": "1", "sid": "9", "gid": "2", "type": "M", "title": "Q1", "question": "Pick some", "parent_qid": "0"},
			{"qid": "2", "sid": "9", "gid": "2", "type": "T", "title": "A", "question": "Option A", "parent_qid": "1"},
			{"qid": "3", "sid": "9", "gid": "2", "type": "T", "title": "B", "question": "Option B", "parent_qid": "1"},
		},
		"export_responses": base64.StdEncoding.EncodeToString([]byte(document)),
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req struct {
			Method string `json:"method"`
			Id     any    `json:"id"`
		}
		require.NoError(t, json.Unmarshal(body, &req))

		result, ok := results[req.Method]
		require.True(t, ok, "unexpected method %s", req.Method)

		err = json.NewEncoder(w).Encode(map[string]any{
			"id": req.Id, "result": result, "error": nil,
		})
		require.NoError(t, err)
	}))
}

func loadFixtureSurvey(t *testing.T, opts ...Option) *Survey {
	cleanup := telemetry.SetupForTesting(t, "test:survey")
	t.Cleanup(cleanup)

	server := fakeSurveyServer(t)
	t.Cleanup(server.Close)

	client, err := limerpc.NewClient(limerpc.Credentials{
		Url:      server.URL,
		Username: "admin",
		Password: "hunter2",
	})
	require.NoError(t, err)

	s := New(9, client, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoadBuildsEverything(t *testing.T) {
	s := loadFixtureSurvey(t)

	require.Equal(t, "Fixture Survey", s.Title())
	require.Equal(t, 3, s.Hierarchy.Len())
	require.Len(t, s.Hierarchy.Groups(), 1)

	// responses come back sorted by id regardless of server order
	require.Len(t, s.Responses, 2)
	require.Equal(t, 1, s.Responses[0].Id())
	require.Equal(t, 2, s.Responses[1].Id())

	g, ok := s.Hierarchy.Group("Q1")
	require.True(t, ok)
	require.Equal(t, []string{"Option B", "hand written"}, g.Value(s.Responses[0]))
	require.Equal(t, []string{"Option A"}, g.Value(s.Responses[1]))
}

func TestTitleOverride(t *testing.T) {
	s := loadFixtureSurvey(t, WithTitle("Renamed"))
	require.Equal(t, "Renamed", s.Title())
}

func TestTitleFallsBackToGeneratedName(t *testing.T) {
	s := New(42, nil)
	require.Equal(t, "Survey 42", s.Title())
}

func TestTitlePrefersLanguageProperties(t *testing.T) {
	s := New(1, nil)
	s.SurveyProps = map[string]any{"surveyls_title": "from survey props"}
	require.Equal(t, "from survey props", s.Title())

	s.LanguageProps = map[string]any{"surveyls_title": "from language props"}
	require.Equal(t, "from language props", s.Title())
}

func TestTables(t *testing.T) {
	s := loadFixtureSurvey(t)

	tables := s.Tables()
	require.Len(t, tables, 3)

	responses := tables[0]
	require.Equal(t, "Responses", responses.Name)
	require.Equal(t, []string{"id", "Q1[A]", "Q1[B]", "Q1[other]"}, responses.Columns)
	require.Equal(t, [][]string{
		{"1", "N/A", "Yes", "hand written"},
		{"2", "Yes", "N/A", "None"},
	}, responses.Rows)

	questions := tables[1]
	require.Equal(t, "Questions", questions.Name)
	require.Equal(t, []string{"title", "qid", "sid", "gid", "type", "text"}, questions.Columns)
	require.Len(t, questions.Rows, 3)
	require.Equal(t, []string{"Q1", "1", "9", "2", "M", "Pick some"}, questions.Rows[0])
	require.Equal(t, []string{"Q1[A]", "2", "9", "2", "T", "Option A"}, questions.Rows[1])

	groups := tables[2]
	require.Equal(t, "Question Groups", groups.Name)
	require.Equal(t, [][]string{
		{"Q1", "Pick some", "Q1[A]) Option A\nQ1[B]) Option B"},
	}, groups.Rows)
}
