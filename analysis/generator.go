// Package analysis turns a speaker-tagged utterance stream into the bundle
// rendered by the meeting dashboard: transcript, participation metrics,
// emotion timeline, relationship graph and summary.
//
// Generation is a pure, synchronous transformation. Everything that would
// come from a classifier is asked of a Scorer, so callers choose between
// real model output and seeded placeholder values.
package analysis

import (
	"fmt"
	"math/rand/v2"
	"time"
	"unicode/utf8"
)

// Config carries the tunable constants of a generation.
type Config struct {
	// MaxDisplaySeconds caps the transcript timestamps. <= 0 disables the cap.
	MaxDisplaySeconds int
	TimelinePoints    int
	PaletteSize       int
	// ExtraLinks is the number of synthetic edges added between speakers
	// that never took consecutive turns.
	ExtraLinks    int
	SummaryPoints int
}

func DefaultConfig() Config {
	return Config{
		MaxDisplaySeconds: 14,
		TimelinePoints:    8,
		PaletteSize:       4,
		ExtraLinks:        1,
		SummaryPoints:     4,
	}
}

// Input is one generation request.
type Input struct {
	Utterances []Utterance
	Roster     []Participant
	// SummaryPoints, when set, replaces the verbatim-transcript placeholder.
	SummaryPoints []string
}

type Generator struct {
	cfg    Config
	scorer Scorer
	rng    *rand.Rand
}

// NewGenerator builds a generator. A nil rng is seeded from the clock; a nil
// scorer becomes a RandomScorer over the same rng.
func NewGenerator(cfg Config, scorer Scorer, rng *rand.Rand) *Generator {
	def := DefaultConfig()
	if cfg.TimelinePoints < 1 {
		cfg.TimelinePoints = def.TimelinePoints
	}
	if cfg.PaletteSize < 1 {
		cfg.PaletteSize = def.PaletteSize
	}
	if cfg.SummaryPoints < 0 {
		cfg.SummaryPoints = 0
	}
	if cfg.ExtraLinks < 0 {
		cfg.ExtraLinks = 0
	}
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	if scorer == nil {
		scorer = NewRandomScorer(rng, 5, 75)
	}
	return &Generator{cfg: cfg, scorer: scorer, rng: rng}
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate runs a default, clock-seeded generation over utts.
func Generate(utts []Utterance) (*AnalysisData, error) {
	return NewGenerator(DefaultConfig(), nil, nil).Generate(Input{Utterances: utts})
}

// UtteranceSeconds is the reading-time heuristic: one second plus one per
// fifteen characters.
func UtteranceSeconds(text string) int {
	return utf8.RuneCountInString(text)/15 + 1
}

func (g *Generator) Generate(in Input) (*AnalysisData, error) {
	if err := Validate(in.Utterances); err != nil {
		return nil, err
	}
	for i, p := range in.Roster {
		if p.SpeakerIndex < 0 {
			return nil, fmt.Errorf("roster entry %d: negative speaker index: %w", i, ErrMalformedUtterance)
		}
	}

	speakers := ResolveSpeakers(in.Utterances, in.Roster)
	transcript, elapsed := g.transcript(in.Utterances, speakers)
	perSpeaker := groupBySpeaker(speakers, transcript)
	graph := g.graph(speakers, transcript, perSpeaker)

	return &AnalysisData{
		Summary:           g.summary(in.SummaryPoints, speakers, transcript, graph),
		Transcript:        transcript,
		Participation:     g.participation(speakers, perSpeaker),
		EmotionTimeline:   g.timeline(speakers, perSpeaker, elapsed),
		RelationshipGraph: graph,
	}, nil
}

func (g *Generator) transcript(utts []Utterance, speakers []Speaker) ([]TranscriptEntry, int) {
	byIndex := make(map[int]Speaker, len(speakers))
	for _, s := range speakers {
		byIndex[s.SpeakerIndex] = s
	}

	out := make([]TranscriptEntry, 0, len(utts))
	clock := 0
	for i, u := range utts {
		sp := byIndex[u.SpeakerIndex]
		d := UtteranceSeconds(u.Text)
		clock += d
		a := g.scorer.Assess(i, u)
		out = append(out, TranscriptEntry{
			ID:              i + 1,
			Speaker:         sp.ID,
			Label:           sp.Label,
			Text:            u.Text,
			Sentiment:       a.Sentiment,
			Emotion:         a.Emotion,
			Timestamp:       formatStamp(g.display(clock)),
			DurationSeconds: d,
			Score:           a.Score,
			end:             clock,
		})
	}
	return out, clock
}

func (g *Generator) display(sec int) int {
	if g.cfg.MaxDisplaySeconds > 0 && sec > g.cfg.MaxDisplaySeconds {
		return g.cfg.MaxDisplaySeconds
	}
	return sec
}

func groupBySpeaker(speakers []Speaker, transcript []TranscriptEntry) map[SpeakerID][]TranscriptEntry {
	out := make(map[SpeakerID][]TranscriptEntry, len(speakers))
	for _, e := range transcript {
		out[e.Speaker] = append(out[e.Speaker], e)
	}
	return out
}

func (g *Generator) participation(speakers []Speaker, perSpeaker map[SpeakerID][]TranscriptEntry) []ParticipationMetric {
	out := make([]ParticipationMetric, 0, len(speakers))
	for _, s := range speakers {
		entries := perSpeaker[s.ID]
		secs := 0
		for _, e := range entries {
			secs += e.DurationSeconds
		}
		conflict := 0
		if len(entries) > 0 {
			conflict = g.scorer.Conflict(s, entries)
		}
		out = append(out, ParticipationMetric{
			Speaker:      s.ID,
			Label:        s.Label,
			SpeakingTime: fmt.Sprintf("%d sec", secs),
			Conflict:     conflict,
			Sentiment:    majority(entries),
			seconds:      secs,
		})
	}
	return out
}

// majority returns the most frequent sentiment; ties and empty input are Neutral.
func majority(entries []TranscriptEntry) Sentiment {
	counts := map[Sentiment]int{}
	for _, e := range entries {
		counts[e.Sentiment]++
	}
	best, bestN, tied := Neutral, 0, false
	for _, s := range sentiments {
		switch n := counts[s]; {
		case n > bestN:
			best, bestN, tied = s, n, false
		case n == bestN && n > 0:
			tied = true
		}
	}
	if bestN == 0 || tied {
		return Neutral
	}
	return best
}

func (g *Generator) timeline(speakers []Speaker, perSpeaker map[SpeakerID][]TranscriptEntry, elapsed int) []EmotionTimelinePoint {
	out := make([]EmotionTimelinePoint, 0, g.cfg.TimelinePoints)
	if len(speakers) == 0 {
		return out
	}

	samples := make(map[SpeakerID][]Sample, len(speakers))
	for id, entries := range perSpeaker {
		for _, e := range entries {
			samples[id] = append(samples[id], Sample{At: e.end, Score: e.Score})
		}
	}

	p := g.cfg.TimelinePoints
	for k := 0; k < p; k++ {
		at := elapsed
		if p > 1 {
			at = (elapsed*k + (p-1)/2) / (p - 1)
		}
		pt := EmotionTimelinePoint{Time: formatClock(at), Values: make(map[SpeakerID]float64, len(speakers))}
		for _, s := range speakers {
			ss := samples[s.ID]
			if len(ss) == 0 || at < ss[0].At {
				pt.Values[s.ID] = 0
				continue
			}
			pt.Values[s.ID] = round2(clamp(g.scorer.Intensity(s, at, ss)))
		}
		out = append(out, pt)
	}
	return out
}

func formatStamp(sec int) string { return fmt.Sprintf("%02d:%02d", sec/60, sec%60) }
func formatClock(sec int) string { return fmt.Sprintf("%d:%02d", sec/60, sec%60) }
