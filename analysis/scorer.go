package analysis

import (
	"math"
	"math/rand/v2"
)

// Assessment is the classifier verdict for a single utterance.
type Assessment struct {
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
	Emotion   string    `json:"emotion"`
}

// PairStats aggregates the consecutive turns exchanged by two speakers.
// Source spoke first in the earliest exchange.
type PairStats struct {
	Source     SpeakerID
	Target     SpeakerID
	Exchanges  int
	ScoreSum   float64
	ScoreCount int
}

func (p PairStats) MeanScore() float64 {
	if p.ScoreCount == 0 {
		return 0
	}
	return p.ScoreSum / float64(p.ScoreCount)
}

// Sample is one scored utterance on a speaker's clock: At is the running
// time in seconds after the utterance.
type Sample struct {
	At    int
	Score float64
}

// Scorer supplies everything the generator cannot derive structurally.
type Scorer interface {
	Assess(i int, u Utterance) Assessment
	Conflict(s Speaker, entries []TranscriptEntry) int
	Link(p PairStats) (LinkType, int)
	// Intensity is only asked for points at or after the speaker's first
	// sample; samples is never empty.
	Intensity(s Speaker, at int, samples []Sample) float64
}

var emotions = []string{
	"curious", "supportive", "critical", "neutral",
	"optimistic", "frustrated", "calm", "appreciative",
}

// RandomScorer is the demo placeholder for a real classifier. It is not safe
// for concurrent use; give each generation its own.
type RandomScorer struct {
	rng         *rand.Rand
	conflictMin int
	conflictMax int
}

func NewRandomScorer(rng *rand.Rand, conflictMin, conflictMax int) *RandomScorer {
	if conflictMin < 0 {
		conflictMin = 0
	}
	if conflictMax > 100 {
		conflictMax = 100
	}
	if conflictMax < conflictMin {
		conflictMax = conflictMin
	}
	return &RandomScorer{rng: rng, conflictMin: conflictMin, conflictMax: conflictMax}
}

func (r *RandomScorer) Assess(_ int, _ Utterance) Assessment {
	s := sentiments[r.rng.IntN(len(sentiments))]
	var score float64
	switch s {
	case Positive:
		score = 0.2 + 0.8*r.rng.Float64()
	case Negative:
		score = -0.2 - 0.8*r.rng.Float64()
	default:
		score = 0.4*r.rng.Float64() - 0.2
	}
	return Assessment{
		Sentiment: s,
		Score:     round2(score),
		Emotion:   emotions[r.rng.IntN(len(emotions))],
	}
}

func (r *RandomScorer) Conflict(_ Speaker, _ []TranscriptEntry) int {
	return r.conflictMin + r.rng.IntN(r.conflictMax-r.conflictMin+1)
}

func (r *RandomScorer) Link(_ PairStats) (LinkType, int) {
	return linkTypes[r.rng.IntN(len(linkTypes))], 1 + r.rng.IntN(3)
}

func (r *RandomScorer) Intensity(_ Speaker, _ int, _ []Sample) float64 {
	return round2(2*r.rng.Float64() - 1)
}

// ClassifiedScorer replays real per-utterance classifier output, indexed by
// utterance position.
type ClassifiedScorer struct {
	assessments []Assessment
}

const linkThreshold = 0.25

func NewClassifiedScorer(assessments []Assessment) *ClassifiedScorer {
	out := make([]Assessment, len(assessments))
	copy(out, assessments)
	return &ClassifiedScorer{assessments: out}
}

func (c *ClassifiedScorer) Assess(i int, _ Utterance) Assessment {
	if i < 0 || i >= len(c.assessments) {
		return Assessment{Sentiment: Neutral, Emotion: "neutral"}
	}
	a := c.assessments[i]
	switch a.Sentiment {
	case Positive, Negative, Neutral:
	default:
		a.Sentiment = SentimentForScore(a.Score)
	}
	if a.Emotion == "" {
		a.Emotion = "neutral"
	}
	a.Score = round2(clamp(a.Score))
	return a
}

// Conflict is the share of the speaker's entries classified Negative.
func (c *ClassifiedScorer) Conflict(_ Speaker, entries []TranscriptEntry) int {
	if len(entries) == 0 {
		return 0
	}
	neg := 0
	for _, e := range entries {
		if e.Sentiment == Negative {
			neg++
		}
	}
	return int(math.Round(100 * float64(neg) / float64(len(entries))))
}

func (c *ClassifiedScorer) Link(p PairStats) (LinkType, int) {
	if p.Exchanges == 0 {
		return LinkNeutral, 1
	}
	switch m := p.MeanScore(); {
	case m > linkThreshold:
		return LinkSupport, p.Exchanges
	case m < -linkThreshold:
		return LinkConflict, p.Exchanges
	default:
		return LinkNeutral, p.Exchanges
	}
}

// Intensity interpolates linearly between samples and holds the last value.
func (c *ClassifiedScorer) Intensity(_ Speaker, at int, samples []Sample) float64 {
	if len(samples) == 0 || at < samples[0].At {
		return 0
	}
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		if at > b.At {
			continue
		}
		if b.At == a.At {
			return round2(b.Score)
		}
		f := float64(at-a.At) / float64(b.At-a.At)
		return round2(a.Score + f*(b.Score-a.Score))
	}
	return round2(samples[len(samples)-1].Score)
}

// SentimentForScore buckets a [-1,1] score with the same threshold used for links.
func SentimentForScore(score float64) Sentiment {
	switch {
	case score > linkThreshold:
		return Positive
	case score < -linkThreshold:
		return Negative
	default:
		return Neutral
	}
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
