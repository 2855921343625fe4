package survey

import (
	"fmt"
	"strconv"

	"limeharvest/lib/limerpc"
)

// Response is one respondent's full set of answers, keyed by
// question-title-like keys. Immutable after construction.
type Response struct {
	data limerpc.ResponseRecord
}

func NewResponse(record limerpc.ResponseRecord) Response {
	return Response{data: record}
}

// Id returns the response id. Servers report it as a json number, but
// string ids decode too.
func (r Response) Id() int {
	switch v := r.data["id"].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	case int:
		return v
	}
	return 0
}

// Answer looks up the answer stored under a display-title key. A missing
// key is an expected path, reported through ok rather than an error. A null
// answer reads as the empty string.
func (r Response) Answer(key string) (string, bool) {
	v, ok := r.data[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	default:
		return fmt.Sprint(t), true
	}
}

// Data exposes the raw record.
func (r Response) Data() map[string]any {
	return r.data
}
