package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Poli-Reddy/insightmeet/analysis"
)

type PersistBundle struct {
	SessionID   string                 `json:"session_id"`
	AudioPath   string                 `json:"audio_path"`
	GeneratedAt time.Time              `json:"generated_at"`
	Source      string                 `json:"source"`
	Classified  bool                   `json:"classified"`
	Roster      []analysis.Participant `json:"roster,omitempty"`
}

func mkSessionDir(outputsRoot, sid string) (string, error) {
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persist writes analysis.json, utterances.json and session.json under
// <outputsRoot>/<session>/ and returns that directory.
func persist(outputsRoot, audioPath string, res *Result, now time.Time) (string, error) {
	outDir, err := mkSessionDir(outputsRoot, res.SessionID)
	if err != nil {
		return "", err
	}

	if err = writeJSON(filepath.Join(outDir, "analysis.json"), res.Analysis); err != nil {
		return "", err
	}
	if err = writeJSON(filepath.Join(outDir, "utterances.json"), map[string]any{"utterances": res.Utterances}); err != nil {
		return "", err
	}

	bundle := PersistBundle{
		SessionID:   res.SessionID,
		AudioPath:   audioPath,
		GeneratedAt: now,
		Source:      res.Source,
		Classified:  res.Classified,
		Roster:      res.Roster,
	}
	if err = writeJSON(filepath.Join(outDir, "session.json"), bundle); err != nil {
		return "", err
	}
	return outDir, nil
}
