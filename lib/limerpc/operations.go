package limerpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
)

// ListSurveys lists the surveys belonging to a user. An empty username
// scopes the listing to the authenticated account.
func (c *Client) ListSurveys(ctx context.Context, username string) ([]SurveySummary, error) {
	if username == "" {
		username = c.creds.Username
	}
	result, err := c.invoke(ctx, "list_surveys", map[string]any{
		"sUser": username,
	})
	if err != nil {
		return nil, err
	}

	var surveys []SurveySummary
	if err := json.Unmarshal(result, &surveys); err != nil {
		return nil, fmt.Errorf("limerpc: decode list_surveys result: %w", err)
	}
	return surveys, nil
}

type ListQuestionsOptions struct {
	// filter by question group when nonzero
	GroupId int
	// filter by language when nonempty
	Language string
}

// ListQuestions returns the raw records of all (sub-)questions of a survey.
func (c *Client) ListQuestions(ctx context.Context, surveyId int, opts ListQuestionsOptions) ([]RawQuestion, error) {
	params := map[string]any{
		"iSurveyID": surveyId,
		"iGroupID":  nil,
		"sLanguage": nil,
	}
	if opts.GroupId != 0 {
		params["iGroupID"] = opts.GroupId
	}
	if opts.Language != "" {
		params["sLanguage"] = opts.Language
	}

	result, err := c.invoke(ctx, "list_questions", params)
	if err != nil {
		return nil, err
	}

	var questions []RawQuestion
	if err := json.Unmarshal(result, &questions); err != nil {
		return nil, fmt.Errorf("limerpc: decode list_questions result: %w", err)
	}
	return questions, nil
}

// GetSurveyProperties retrieves the base properties of a survey. The title
// usually has to come from GetLanguageProperties instead.
func (c *Client) GetSurveyProperties(ctx context.Context, surveyId int) (map[string]any, error) {
	return c.getProperties(ctx, "get_survey_properties", surveyId)
}

// GetLanguageProperties retrieves the localized properties of a survey,
// including surveyls_title.
func (c *Client) GetLanguageProperties(ctx context.Context, surveyId int) (map[string]any, error) {
	return c.getProperties(ctx, "get_language_properties", surveyId)
}

func (c *Client) getProperties(ctx context.Context, endpoint string, surveyId int) (map[string]any, error) {
	result, err := c.invoke(ctx, endpoint, map[string]any{
		"iSurveyID":             surveyId,
		"aSurveyLocaleSettings": nil,
		"sLang":                 nil,
	})
	if err != nil {
		return nil, err
	}

	var props map[string]any
	if err := json.Unmarshal(result, &props); err != nil {
		return nil, fmt.Errorf("limerpc: decode %s result: %w", endpoint, err)
	}
	return props, nil
}

var (
	completionStatuses = []string{"complete", "incomplete", "all"}
	headingTypes       = []string{"code", "full", "abbreviated"}
	responseTypes      = []string{"short", "long"}
)

type ExportResponsesOptions struct {
	Language         string
	CompletionStatus string // complete | incomplete | all, default all
	HeadingType      string // code | full | abbreviated, default code
	ResponseType     string // short | long, default long
	FromResponseId   int
	ToResponseId     int
	Fields           []string
}

func (o *ExportResponsesOptions) validate() error {
	if o.CompletionStatus == "" {
		o.CompletionStatus = "all"
	}
	if o.HeadingType == "" {
		o.HeadingType = "code"
	}
	if o.ResponseType == "" {
		o.ResponseType = "long"
	}
	if !slices.Contains(completionStatuses, o.CompletionStatus) {
		return &InvalidParameterError{Param: "completion status", Value: o.CompletionStatus, Allowed: completionStatuses}
	}
	if !slices.Contains(headingTypes, o.HeadingType) {
		return &InvalidParameterError{Param: "heading type", Value: o.HeadingType, Allowed: headingTypes}
	}
	if !slices.Contains(responseTypes, o.ResponseType) {
		return &InvalidParameterError{Param: "response type", Value: o.ResponseType, Allowed: responseTypes}
	}
	return nil
}

// ExportResponses downloads the responses of a survey. The server replies
// with a base64 encoded json document in which every record is wrapped in a
// single-entry map keyed by response id; the wrapper keys are discarded and
// a flat sequence of records is returned. Out-of-enumeration options are
// rejected before any network call.
func (c *Client) ExportResponses(ctx context.Context, surveyId int, opts ExportResponsesOptions) ([]ResponseRecord, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	params := map[string]any{
		"iSurveyID":         surveyId,
		"sDocumentType":     "json",
		"sLanguageCode":     nil,
		"sCompletionStatus": opts.CompletionStatus,
		"sHeadingType":      opts.HeadingType,
		"sResponseType":     opts.ResponseType,
		"iFromResponseID":   nil,
		"iToResponseID":     nil,
		"aFields":           nil,
	}
	if opts.Language != "" {
		params["sLanguageCode"] = opts.Language
	}
	if opts.FromResponseId != 0 {
		params["iFromResponseID"] = opts.FromResponseId
	}
	if opts.ToResponseId != 0 {
		params["iToResponseID"] = opts.ToResponseId
	}
	if len(opts.Fields) > 0 {
		params["aFields"] = opts.Fields
	}

	result, err := c.invoke(ctx, "export_responses", params)
	if err != nil {
		return nil, err
	}

	var document string
	if err := json.Unmarshal(result, &document); err != nil {
		return nil, fmt.Errorf("limerpc: export_responses result is not a base64 document: %w", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(document)
	if err != nil {
		return nil, fmt.Errorf("limerpc: decode export document: %w", err)
	}

	var envelope struct {
		Responses []map[string]ResponseRecord `json:"responses"`
	}
	if err := json.Unmarshal(decoded, &envelope); err != nil {
		return nil, fmt.Errorf("limerpc: decode export document: %w", err)
	}

	var records []ResponseRecord
	for _, wrapper := range envelope.Responses {
		for _, record := range wrapper {
			records = append(records, record)
		}
	}
	return records, nil
}
