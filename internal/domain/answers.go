package domain

import (
	"encoding/json"
	"strconv"
)

// AnswerValue is the string-or-number variant used for option values and
// recorded answers. Clients send both forms interchangeably, so equality is
// always decided on the canonical string form.
type AnswerValue struct {
	raw     string
	numeric bool
}

// StringValue wraps a plain string answer.
func StringValue(s string) AnswerValue {
	return AnswerValue{raw: s}
}

// IntValue wraps a numeric answer.
func IntValue(n int) AnswerValue {
	return AnswerValue{raw: strconv.Itoa(n), numeric: true}
}

// FloatValue wraps a fractional numeric answer (Likert weights produce these).
func FloatValue(f float64) AnswerValue {
	return AnswerValue{raw: strconv.FormatFloat(f, 'f', -1, 64), numeric: true}
}

// String returns the canonical form used for option matching.
func (v AnswerValue) String() string { return v.raw }

// IsEmpty reports whether the value is absent or an empty string. A recorded
// zero is not empty.
func (v AnswerValue) IsEmpty() bool { return v.raw == "" }

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(v.raw), nil
	}
	return json.Marshal(v.raw)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = AnswerValue{raw: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = AnswerValue{raw: n.String(), numeric: true}
	return nil
}

// Answers maps question IDs to recorded values. Insertion order is irrelevant.
type Answers map[string]AnswerValue

// Clone returns an independent copy so a submitted record cannot alias
// in-flight attempt state.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
