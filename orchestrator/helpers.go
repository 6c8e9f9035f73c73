package orchestrator

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Poli-Reddy/insightmeet/analysis"
	"github.com/Poli-Reddy/insightmeet/clients"
)

// segmentsToUtterances attributes every ASR segment to speaker 0; without a
// diarizer there is nobody else to attribute them to.
func segmentsToUtterances(asr *clients.ASRResp) []analysis.Utterance {
	utts := make([]analysis.Utterance, 0, len(asr.Segments))
	for _, s := range asr.Segments {
		utts = append(utts, analysis.Utterance{SpeakerIndex: 0, Text: strings.TrimSpace(s.Text)})
	}
	return utts
}

// transcriptText renders "<label>: <text>" lines for the summary service.
func transcriptText(utts []analysis.Utterance, roster []analysis.Participant) string {
	speakers := analysis.ResolveSpeakers(utts, roster)
	labels := make(map[int]string, len(speakers))
	for _, s := range speakers {
		labels[s.SpeakerIndex] = s.Label
	}
	var b strings.Builder
	for _, u := range utts {
		b.WriteString(labels[u.SpeakerIndex])
		b.WriteString(": ")
		b.WriteString(u.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func newSessionID(now time.Time) string {
	return "session_" + now.Format("20060102-150405") + "_" + uuid.NewString()[:8]
}
