package limerpc

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexInt decodes integers the server may send either as a json number or
// as a quoted string, which varies between endpoint and server version.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// SurveySummary is one entry of a list_surveys result.
type SurveySummary struct {
	Id        FlexInt `json:"sid"`
	StartDate string  `json:"startdate"`
	Expires   string  `json:"expires"`
	Active    string  `json:"active"`
	Title     string  `json:"surveyls_title"`
}

// RawQuestion is a question record as the server returned it, an immutable
// snapshot. Depending on server version the qid lives either at the top
// level or nested inside a composite id object; both shapes decode.
type RawQuestion struct {
	Qid       int
	Sid       int
	Gid       int
	Type      string
	Title     string
	Question  string
	ParentQid int
}

func (q *RawQuestion) UnmarshalJSON(data []byte) error {
	var aux struct {
		Id        json.RawMessage `json:"id"`
		Qid       FlexInt         `json:"qid"`
		Sid       FlexInt         `json:"sid"`
		Gid       FlexInt         `json:"gid"`
		Type      string          `json:"type"`
		Title     string          `json:"title"`
		Question  string          `json:"question"`
		ParentQid FlexInt         `json:"parent_qid"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	qid := int(aux.Qid)
	if len(aux.Id) > 0 {
		var composite struct {
			Qid FlexInt `json:"qid"`
		}
		if err := json.Unmarshal(aux.Id, &composite); err == nil && composite.Qid != 0 {
			qid = int(composite.Qid)
		} else {
			var plain FlexInt
			if err := json.Unmarshal(aux.Id, &plain); err == nil && plain != 0 {
				qid = int(plain)
			}
		}
	}

	q.Qid = qid
	q.Sid = int(aux.Sid)
	q.Gid = int(aux.Gid)
	q.Type = aux.Type
	q.Title = aux.Title
	q.Question = aux.Question
	q.ParentQid = int(aux.ParentQid)
	return nil
}

// ResponseRecord is one flattened response: question-title-like keys mapped
// to answer values.
type ResponseRecord map[string]any
