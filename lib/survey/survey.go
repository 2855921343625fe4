package survey

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"limeharvest/lib/limerpc"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Survey holds everything extracted for one survey. All fields are filled
// by Load and read-only afterwards.
type Survey struct {
	Id  int
	api *limerpc.Client

	titleOverride string

	Hierarchy     *Hierarchy
	Responses     []Response // sorted by response id
	SurveyProps   map[string]any
	LanguageProps map[string]any
}

type Option func(*Survey)

// WithTitle overrides the title normally derived from the survey's language
// properties.
func WithTitle(title string) Option {
	return func(s *Survey) {
		s.titleOverride = title
	}
}

func New(id int, api *limerpc.Client, opts ...Option) *Survey {
	s := &Survey{
		Id:  id,
		api: api,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load pulls everything from the remote platform in one sequential pass:
// survey properties, language properties, questions (building the
// hierarchy) and responses. Authenticate runs first so a misconfigured
// endpoint fails before any partial load; the client would otherwise
// re-authenticate on its own anyway.
func (s *Survey) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "survey:Load")
	defer span.End()
	span.SetAttributes(attribute.Int("survey_id", s.Id))

	slog.InfoContext(ctx, "loading survey data", "survey_id", s.Id)

	if err := s.api.Authenticate(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to authenticate")
		return err
	}

	props, err := s.api.GetSurveyProperties(ctx, s.Id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load survey properties")
		return err
	}
	s.SurveyProps = props

	langProps, err := s.api.GetLanguageProperties(ctx, s.Id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load language properties")
		return err
	}
	s.LanguageProps = langProps

	questions, err := s.api.ListQuestions(ctx, s.Id, limerpc.ListQuestionsOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load questions")
		return err
	}
	_, buildSpan := tracer.Start(ctx, "survey:BuildHierarchy")
	s.Hierarchy = BuildHierarchy(questions)
	buildSpan.End()

	records, err := s.api.ExportResponses(ctx, s.Id, limerpc.ExportResponsesOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to export responses")
		return err
	}
	responses := make([]Response, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewResponse(record))
	}
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].Id() < responses[j].Id()
	})
	s.Responses = responses

	slog.InfoContext(ctx, "survey data loaded",
		"survey_id", s.Id,
		"questions", s.Hierarchy.Len(),
		"responses", len(s.Responses),
	)
	return nil
}

// Title resolves the survey title from the loaded properties. A failed
// lookup falls back to a generated name; the fallback is the contract, not
// an error.
func (s *Survey) Title() string {
	if s.titleOverride != "" {
		return s.titleOverride
	}
	for _, props := range []map[string]any{s.LanguageProps, s.SurveyProps} {
		if title, ok := props["surveyls_title"].(string); ok && title != "" {
			return title
		}
	}
	return fmt.Sprintf("Survey %d", s.Id)
}
