package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type wireUtterance struct {
	Speaker      json.RawMessage `json:"speaker"`
	SpeakerIndex *int            `json:"speakerIndex"`
	Text         *string         `json:"text"`
}

// ParseUtterances decodes collaborator output. It accepts a bare array or an
// object with an "utterances" array. Each element carries either an integer
// "speaker"/"speakerIndex" or a string "speaker" label; all elements must use
// the same form. The returned roster is non-nil only for labelled input.
func ParseUtterances(data []byte) ([]Utterance, []Participant, error) {
	data = bytes.TrimSpace(data)
	var items []wireUtterance
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, nil, fmt.Errorf("decode utterances: %w", err)
		}
	} else {
		var env struct {
			Utterances []wireUtterance `json:"utterances"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, nil, fmt.Errorf("decode utterances: %w", err)
		}
		items = env.Utterances
	}

	var (
		indexed []Utterance
		labeled []LabeledUtterance
	)
	for i, it := range items {
		if it.Text == nil {
			return nil, nil, &UtteranceError{Index: i, Reason: "missing text"}
		}
		idx, label, err := it.speaker()
		if err != nil {
			return nil, nil, &UtteranceError{Index: i, Reason: err.Error()}
		}
		switch {
		case label != "":
			if len(indexed) > 0 {
				return nil, nil, &UtteranceError{Index: i, Reason: "mixed labelled and indexed speakers"}
			}
			labeled = append(labeled, LabeledUtterance{Speaker: label, Text: *it.Text})
		default:
			if len(labeled) > 0 {
				return nil, nil, &UtteranceError{Index: i, Reason: "mixed labelled and indexed speakers"}
			}
			if idx < 0 {
				return nil, nil, &UtteranceError{Index: i, Reason: fmt.Sprintf("negative speaker index %d", idx)}
			}
			indexed = append(indexed, Utterance{SpeakerIndex: idx, Text: *it.Text})
		}
	}

	if len(labeled) > 0 {
		utts, roster := FromLabeled(labeled)
		return utts, roster, nil
	}
	if indexed == nil {
		indexed = []Utterance{}
	}
	return indexed, nil, nil
}

func (w wireUtterance) speaker() (int, string, error) {
	if w.SpeakerIndex != nil {
		return *w.SpeakerIndex, "", nil
	}
	if len(w.Speaker) == 0 || string(w.Speaker) == "null" {
		return 0, "", fmt.Errorf("missing speaker")
	}
	var n int
	if err := json.Unmarshal(w.Speaker, &n); err == nil {
		return n, "", nil
	}
	var s string
	if err := json.Unmarshal(w.Speaker, &s); err != nil {
		return 0, "", fmt.Errorf("speaker must be an integer or a label")
	}
	if s == "" {
		return 0, "", fmt.Errorf("empty speaker label")
	}
	return 0, s, nil
}
