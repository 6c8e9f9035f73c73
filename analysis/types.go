package analysis

import (
	"encoding/json"
	"fmt"
)

// Utterance is one contiguous unit of speech, in the order it was spoken.
type Utterance struct {
	SpeakerIndex int    `json:"speakerIndex" yaml:"speakerIndex"`
	Text         string `json:"text" yaml:"text"`
}

// Participant names a speaker index up front, e.g. from a visual tracker.
// Participants that never speak still show up in the bundle.
type Participant struct {
	SpeakerIndex int    `json:"speakerIndex" yaml:"speakerIndex"`
	Label        string `json:"label" yaml:"label"`
}

type SpeakerID string

type Speaker struct {
	ID           SpeakerID
	SpeakerIndex int
	Label        string
	Ordinal      int
}

type Sentiment string

const (
	Positive Sentiment = "Positive"
	Negative Sentiment = "Negative"
	Neutral  Sentiment = "Neutral"
)

var sentiments = []Sentiment{Positive, Negative, Neutral}

type LinkType string

const (
	LinkSupport  LinkType = "support"
	LinkConflict LinkType = "conflict"
	LinkNeutral  LinkType = "neutral"
)

var linkTypes = []LinkType{LinkSupport, LinkConflict, LinkNeutral}

type TranscriptEntry struct {
	ID              int       `json:"id" yaml:"id"`
	Speaker         SpeakerID `json:"speaker" yaml:"speaker"`
	Label           string    `json:"label" yaml:"label"`
	Text            string    `json:"text" yaml:"text"`
	Sentiment       Sentiment `json:"sentiment" yaml:"sentiment"`
	Emotion         string    `json:"emotion" yaml:"emotion"`
	Timestamp       string    `json:"timestamp" yaml:"timestamp"`
	DurationSeconds int       `json:"durationSeconds" yaml:"durationSeconds"`
	Score           float64   `json:"score" yaml:"score"`

	// end is the unclamped running clock after this entry.
	end int
}

type ParticipationMetric struct {
	Speaker      SpeakerID `json:"speaker" yaml:"speaker"`
	Label        string    `json:"label" yaml:"label"`
	SpeakingTime string    `json:"speakingTime" yaml:"speakingTime"`
	Conflict     int       `json:"conflict" yaml:"conflict"`
	Sentiment    Sentiment `json:"sentiment" yaml:"sentiment"`

	seconds int
}

// Seconds is the numeric form of SpeakingTime.
func (p ParticipationMetric) Seconds() int { return p.seconds }

// EmotionTimelinePoint serializes as {"time": "M:SS", "<speakerId>": value, ...}.
type EmotionTimelinePoint struct {
	Time   string
	Values map[SpeakerID]float64
}

func (p EmotionTimelinePoint) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Values)+1)
	for id, v := range p.Values {
		m[string(id)] = v
	}
	m["time"] = p.Time
	return json.Marshal(m)
}

func (p *EmotionTimelinePoint) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Values = make(map[SpeakerID]float64, len(raw))
	for k, v := range raw {
		if k == "time" {
			if err := json.Unmarshal(v, &p.Time); err != nil {
				return fmt.Errorf("timeline time: %w", err)
			}
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("timeline value %q: %w", k, err)
		}
		p.Values[SpeakerID(k)] = f
	}
	return nil
}

// MarshalYAML flattens the point the same way MarshalJSON does.
func (p EmotionTimelinePoint) MarshalYAML() (any, error) {
	m := make(map[string]any, len(p.Values)+1)
	for id, v := range p.Values {
		m[string(id)] = v
	}
	m["time"] = p.Time
	return m, nil
}

type GraphNode struct {
	ID    SpeakerID `json:"id" yaml:"id"`
	Label string    `json:"label" yaml:"label"`
	Group int       `json:"group" yaml:"group"`
}

type GraphLink struct {
	Source SpeakerID `json:"source" yaml:"source"`
	Target SpeakerID `json:"target" yaml:"target"`
	Type   LinkType  `json:"type" yaml:"type"`
	Value  int       `json:"value" yaml:"value"`
}

type RelationshipGraphData struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`
	Links []GraphLink `json:"links" yaml:"links"`
}

type SummaryData struct {
	Title               string   `json:"title" yaml:"title"`
	OverallSentiment    string   `json:"overallSentiment" yaml:"overallSentiment"`
	Points              []string `json:"points" yaml:"points"`
	RelationshipSummary string   `json:"relationshipSummary" yaml:"relationshipSummary"`
}

// AnalysisData is the bundle handed to the dashboard. Field names are the
// wire contract with the UI.
type AnalysisData struct {
	Summary           SummaryData            `json:"summary" yaml:"summary"`
	Transcript        []TranscriptEntry      `json:"transcript" yaml:"transcript"`
	Participation     []ParticipationMetric  `json:"participation" yaml:"participation"`
	EmotionTimeline   []EmotionTimelinePoint `json:"emotionTimeline" yaml:"emotionTimeline"`
	RelationshipGraph RelationshipGraphData  `json:"relationshipGraph" yaml:"relationshipGraph"`
}
