package orchestrator

import "github.com/Poli-Reddy/insightmeet/analysis"

// Result is one finished upload-and-transcribe cycle.
type Result struct {
	SessionID  string
	Dir        string // empty when outputs are not persisted
	Source     string // diarization, asr or sample
	Classified bool   // true when a real sentiment classifier scored the bundle
	Utterances []analysis.Utterance
	Roster     []analysis.Participant
	Analysis   *analysis.AnalysisData
}
