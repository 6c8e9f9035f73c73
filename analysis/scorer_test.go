package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomScorer_Ranges(t *testing.T) {
	r := NewRandomScorer(NewRand(3), 5, 75)
	for i := 0; i < 500; i++ {
		a := r.Assess(i, Utterance{})
		assert.Contains(t, sentiments, a.Sentiment)
		assert.Contains(t, emotions, a.Emotion)
		switch a.Sentiment {
		case Positive:
			assert.GreaterOrEqual(t, a.Score, 0.2)
		case Negative:
			assert.LessOrEqual(t, a.Score, -0.2)
		default:
			assert.InDelta(t, 0, a.Score, 0.2)
		}

		c := r.Conflict(Speaker{}, nil)
		assert.GreaterOrEqual(t, c, 5)
		assert.LessOrEqual(t, c, 75)

		typ, v := r.Link(PairStats{})
		assert.Contains(t, linkTypes, typ)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)

		in := r.Intensity(Speaker{}, 0, nil)
		assert.GreaterOrEqual(t, in, -1.0)
		assert.LessOrEqual(t, in, 1.0)
	}
}

func TestRandomScorer_BoundsNormalized(t *testing.T) {
	r := NewRandomScorer(NewRand(1), 90, 10)
	for i := 0; i < 20; i++ {
		assert.Equal(t, 90, r.Conflict(Speaker{}, nil))
	}
}

func TestClassifiedScorer_Assess(t *testing.T) {
	c := NewClassifiedScorer([]Assessment{
		{Sentiment: "positive?", Score: 1.7},
		{Sentiment: Negative, Score: -0.3, Emotion: "tense"},
	})

	assert.Equal(t, Assessment{Sentiment: Positive, Score: 1, Emotion: "neutral"}, c.Assess(0, Utterance{}))
	assert.Equal(t, Assessment{Sentiment: Negative, Score: -0.3, Emotion: "tense"}, c.Assess(1, Utterance{}))
	assert.Equal(t, Assessment{Sentiment: Neutral, Emotion: "neutral"}, c.Assess(2, Utterance{}))
}

func TestClassifiedScorer_Link(t *testing.T) {
	c := NewClassifiedScorer(nil)
	tests := []struct {
		name  string
		stats PairStats
		typ   LinkType
		value int
	}{
		{"no exchanges", PairStats{}, LinkNeutral, 1},
		{"warm", PairStats{Exchanges: 3, ScoreSum: 3, ScoreCount: 6}, LinkSupport, 3},
		{"hostile", PairStats{Exchanges: 1, ScoreSum: -1.2, ScoreCount: 2}, LinkConflict, 1},
		{"lukewarm", PairStats{Exchanges: 2, ScoreSum: 0.4, ScoreCount: 4}, LinkNeutral, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, v := c.Link(tt.stats)
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestClassifiedScorer_Intensity(t *testing.T) {
	c := NewClassifiedScorer(nil)
	samples := []Sample{{At: 2, Score: 0.8}, {At: 6, Score: -0.2}, {At: 6, Score: 0.5}}

	assert.Equal(t, 0.0, c.Intensity(Speaker{}, 1, samples))
	assert.InDelta(t, 0.8, c.Intensity(Speaker{}, 2, samples), 1e-9)
	assert.InDelta(t, 0.3, c.Intensity(Speaker{}, 4, samples), 1e-9)
	assert.InDelta(t, -0.2, c.Intensity(Speaker{}, 6, samples), 1e-9)
	assert.InDelta(t, 0.5, c.Intensity(Speaker{}, 9, samples), 1e-9)
	assert.Equal(t, 0.0, c.Intensity(Speaker{}, 9, nil))
}

func TestSentimentForScore(t *testing.T) {
	assert.Equal(t, Positive, SentimentForScore(0.26))
	assert.Equal(t, Neutral, SentimentForScore(0.25))
	assert.Equal(t, Neutral, SentimentForScore(-0.25))
	assert.Equal(t, Negative, SentimentForScore(-0.9))
}
