// Package extractor converts free-text model replies that are nominally
// JSON question sets into validated Question records, tolerating code
// fences and the envelope shapes models actually emit.
package extractor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/SaiNageswarS/go-collection-boot/linq"

	"github.com/Vasudevshetty/studysyncs/apperr"
)

const OptionsPerQuestion = 4

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// PublicQuestion is the client-facing projection: the answer key stays
// server-side.
type PublicQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (q Question) Public() PublicQuestion {
	return PublicQuestion{Question: q.Question, Options: q.Options}
}

func Public(questions []Question) []PublicQuestion {
	return linq.Map(questions, func(q Question) PublicQuestion { return q.Public() })
}

// Extract parses raw model output into an ordered question list.
// limit > 0 truncates the validated list, preserving original order.
func Extract(raw string, limit int) ([]Question, error) {
	text := stripFence(strings.TrimSpace(raw))

	list, err := locateQuestionList([]byte(text))
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(list))
	for _, element := range list {
		q, err := validateQuestion(element)
		if err != nil {
			// a half-valid quiz is worse than none: fail the whole batch
			return nil, err
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, apperr.Newf(apperr.EmptyResult, "model returned no questions")
	}

	if limit > 0 && len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, nil
}

// stripFence removes a wrapping markdown code fence and its language tag.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// locateQuestionList resolves the envelope, in fixed priority order:
// a bare list; an object's "questions" list; the first list-valued field
// (in key order) whose objects all carry a "question" field.
func locateQuestionList(data []byte) ([]json.RawMessage, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, apperr.Newf(apperr.MalformedOutput, "not valid JSON: %v; text: %s", err, string(data))
	}

	switch probe.(type) {
	case []any:
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, apperr.Newf(apperr.MalformedOutput, "decoding list: %v", err)
		}
		return list, nil
	case map[string]any:
		fields, err := orderedFields(data)
		if err != nil {
			return nil, apperr.Newf(apperr.MalformedOutput, "decoding object: %v", err)
		}

		for _, f := range fields {
			if f.key != "questions" {
				continue
			}
			var list []json.RawMessage
			if err := json.Unmarshal(f.value, &list); err == nil {
				return list, nil
			}
		}

		for _, f := range fields {
			if list, ok := questionList(f.value); ok {
				return list, nil
			}
		}
		return nil, apperr.Newf(apperr.UnexpectedShape, "no question list in object; text: %s", string(data))
	default:
		return nil, apperr.Newf(apperr.UnexpectedShape, "top-level value is neither list nor object")
	}
}

type field struct {
	key   string
	value json.RawMessage
}

// orderedFields walks the object with a token decoder so key order is
// preserved. Map iteration would make "first list-valued field"
// nondeterministic.
func orderedFields(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	var fields []field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, field{key: key, value: value})
	}
	return fields, nil
}

// questionList reports whether value is a non-empty list of objects that
// all contain a "question" field.
func questionList(value json.RawMessage) ([]json.RawMessage, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal(value, &list); err != nil || len(list) == 0 {
		return nil, false
	}

	for _, element := range list {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(element, &obj); err != nil {
			return nil, false
		}
		if _, ok := obj["question"]; !ok {
			return nil, false
		}
	}
	return list, true
}

func validateQuestion(element json.RawMessage) (Question, error) {
	var q Question
	if err := json.Unmarshal(element, &q); err != nil {
		return Question{}, apperr.Newf(apperr.MalformedOutput, "question element is not an object: %v", err)
	}

	if q.Question == "" {
		return Question{}, apperr.Newf(apperr.MalformedOutput, "question text missing: %s", string(element))
	}

	if len(q.Options) != OptionsPerQuestion {
		return Question{}, apperr.Newf(apperr.MalformedOutput,
			"expected %d options, got %d: %s", OptionsPerQuestion, len(q.Options), q.Question)
	}

	distinct := ds.NewSet[string]()
	for _, opt := range q.Options {
		distinct.Add(opt)
	}
	if distinct.Len() != OptionsPerQuestion {
		return Question{}, apperr.Newf(apperr.MalformedOutput, "duplicate options: %s", q.Question)
	}

	if !distinct.Contains(q.CorrectAnswer) {
		return Question{}, apperr.Newf(apperr.MalformedOutput,
			"correct answer %q not among options: %s", q.CorrectAnswer, q.Question)
	}
	return q, nil
}
