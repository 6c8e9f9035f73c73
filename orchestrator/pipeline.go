package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Poli-Reddy/insightmeet/analysis"
	"github.com/Poli-Reddy/insightmeet/clients"
	cfg "github.com/Poli-Reddy/insightmeet/config"
	"github.com/Poli-Reddy/insightmeet/metrics"
)

// ErrNoTranscriber is returned when neither a diarization nor an ASR service
// is configured.
var ErrNoTranscriber = errors.New("no diarization or asr service configured")

type Pipeline struct {
	cfg     *cfg.Root
	http    *clients.HTTP
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Pipeline)

func WithLogger(l logrus.FieldLogger) Option { return func(p *Pipeline) { p.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(p *Pipeline) { p.metrics = m } }

func NewPipeline(c *cfg.Root, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:  c,
		http: clients.NewHTTP(c.Services.Timeout),
		log:  logrus.StandardLogger(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run analyzes the recording at audioPath.
func (p *Pipeline) Run(ctx context.Context, audioPath string) (*Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Analyze(ctx, audioPath, f)
}

// Analyze drives one upload: transcribe, classify, summarize, generate,
// persist and publish. Only transcription and generation failures are
// fatal; classifier, summary and dashboard failures degrade to placeholders.
func (p *Pipeline) Analyze(ctx context.Context, filename string, audio io.Reader) (*Result, error) {
	start := p.now()
	res := &Result{SessionID: newSessionID(start)}
	log := p.log.WithField("session", res.SessionID)

	if err := p.transcribe(ctx, filename, audio, res); err != nil {
		p.collaboratorError(res.Source)
		return nil, err
	}
	if len(res.Utterances) == 0 && p.cfg.Generator.SampleWhenEmpty {
		log.Warn("no utterances recognised, falling back to the sample meeting")
		res.Utterances, res.Roster = analysis.SampleMeeting()
		res.Source = "sample"
	}
	log.WithFields(logrus.Fields{"source": res.Source, "utterances": len(res.Utterances)}).Info("transcribed")

	rng := analysis.NewRand(p.seed())
	scorer, classified := p.scorer(ctx, log, res.Utterances, rng)
	res.Classified = classified

	gcfg := p.cfg.Analysis()
	if classified {
		// synthetic edges only make sense next to synthetic scores
		gcfg.ExtraLinks = 0
	}
	data, err := analysis.NewGenerator(gcfg, scorer, rng).Generate(analysis.Input{
		Utterances:    res.Utterances,
		Roster:        res.Roster,
		SummaryPoints: p.summaryPoints(ctx, log, res.Utterances, res.Roster),
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	res.Analysis = data

	if out := p.cfg.Paths.Outputs; out != "" {
		dir, err := persist(out, filename, res, p.now())
		if err != nil {
			return nil, fmt.Errorf("persist: %w", err)
		}
		res.Dir = dir
	}

	if url := p.cfg.Services.Visualization.URL; url != "" {
		if pub, err := p.http.Publish(ctx, url, res.SessionID, data); err != nil {
			p.collaboratorError("visualization")
			log.WithError(err).Warn("dashboard publish failed")
		} else {
			log.WithField("path", pub.Path).Debug("published")
		}
	}

	if p.metrics != nil {
		p.metrics.RecordAnalysis(p.now().Sub(start), len(data.Participation))
	}
	log.WithFields(logrus.Fields{
		"speakers":   len(data.Participation),
		"entries":    len(data.Transcript),
		"links":      len(data.RelationshipGraph.Links),
		"classified": classified,
		"dir":        res.Dir,
	}).Info("analysis complete")
	return res, nil
}

func (p *Pipeline) transcribe(ctx context.Context, filename string, audio io.Reader, res *Result) error {
	name := filepath.Base(filename)
	switch {
	case p.cfg.Services.Diarization.URL != "":
		res.Source = "diarization"
		utts, roster, err := p.http.Diarize(ctx, p.cfg.Services.Diarization.URL, name, audio)
		if err != nil {
			return err
		}
		res.Utterances, res.Roster = utts, roster
	case p.cfg.Services.ASR.URL != "":
		res.Source = "asr"
		asr, err := p.http.Transcribe(ctx, p.cfg.Services.ASR.URL, name, audio)
		if err != nil {
			return err
		}
		res.Utterances = segmentsToUtterances(asr)
	default:
		return ErrNoTranscriber
	}
	return analysis.Validate(res.Utterances)
}

func (p *Pipeline) seed() uint64 {
	if s := p.cfg.Generator.Seed; s != 0 {
		return s
	}
	return uint64(p.now().UnixNano())
}

func (p *Pipeline) random(rng *rand.Rand) analysis.Scorer {
	return analysis.NewRandomScorer(rng, p.cfg.Generator.ConflictMin, p.cfg.Generator.ConflictMax)
}

// scorer classifies every utterance when a sentiment service is configured.
// Any classification failure drops the whole bundle back to placeholders so
// real and random scores are never mixed.
func (p *Pipeline) scorer(ctx context.Context, log logrus.FieldLogger, utts []analysis.Utterance, rng *rand.Rand) (analysis.Scorer, bool) {
	url := p.cfg.Services.Sentiment.URL
	if url == "" || len(utts) == 0 {
		return p.random(rng), false
	}
	assessments, err := p.classify(ctx, url, utts)
	if err != nil {
		p.collaboratorError("sentiment")
		log.WithError(err).Warn("classification failed, using placeholder scores")
		return p.random(rng), false
	}
	return analysis.NewClassifiedScorer(assessments), true
}

func (p *Pipeline) classify(ctx context.Context, url string, utts []analysis.Utterance) ([]analysis.Assessment, error) {
	out := make([]analysis.Assessment, len(utts))
	emoURL := p.cfg.Services.Emotion.URL

	g, gctx := errgroup.WithContext(ctx)
	workers := p.cfg.Services.ClassifyWorkers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	for i, u := range utts {
		if u.Text == "" {
			out[i] = analysis.Assessment{Sentiment: analysis.Neutral, Emotion: "neutral"}
			continue
		}
		g.Go(func() error {
			s, err := p.http.Sentiment(gctx, url, u.Text)
			if err != nil {
				return fmt.Errorf("utterance %d: %w", i, err)
			}
			a := analysis.Assessment{Sentiment: s.Label(), Score: s.Score}
			if emoURL != "" {
				if emo, err := p.http.Emotion(gctx, emoURL, u.Text); err == nil {
					a.Emotion = emo.Dominant()
				} else {
					p.collaboratorError("emotion")
					p.log.WithError(err).WithField("utterance", i).Debug("emotion detection failed")
				}
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Pipeline) summaryPoints(ctx context.Context, log logrus.FieldLogger, utts []analysis.Utterance, roster []analysis.Participant) []string {
	url := p.cfg.Services.Summary.URL
	if url == "" || len(utts) == 0 {
		return nil
	}
	sum, err := p.http.Summarize(ctx, url, transcriptText(utts, roster))
	if err != nil {
		p.collaboratorError("summary")
		log.WithError(err).Warn("summary failed, using transcript excerpts")
		return nil
	}
	return sum.Points
}

func (p *Pipeline) collaboratorError(service string) {
	if p.metrics != nil && service != "" {
		p.metrics.RecordCollaboratorError(service)
	}
}
