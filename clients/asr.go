package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/Poli-Reddy/insightmeet/analysis"
)

type TransSeg struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
type ASRResp struct {
	Segments []TransSeg `json:"segments"`
	Language string     `json:"language"`
}

// upload posts audio as the multipart "file" field and returns the 200 body.
func (h *HTTP) upload(ctx context.Context, svc, url, filename string, audio io.Reader) ([]byte, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(fw, audio); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read: %w", svc, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: %s", svc, resp.Status, string(body))
	}
	return body, nil
}

// Transcribe returns plain segments without speaker attribution.
func (h *HTTP) Transcribe(ctx context.Context, url, filename string, audio io.Reader) (*ASRResp, error) {
	body, err := h.upload(ctx, "asr", url+"/transcribe", filename, audio)
	if err != nil {
		return nil, err
	}
	var out ASRResp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("asr decode: %w", err)
	}
	return &out, nil
}

// Diarize returns speaker-tagged utterances in speaking order. Elements with
// a missing text or a negative speaker are rejected here, before generation.
func (h *HTTP) Diarize(ctx context.Context, url, filename string, audio io.Reader) ([]analysis.Utterance, []analysis.Participant, error) {
	body, err := h.upload(ctx, "diarize", url+"/diarize", filename, audio)
	if err != nil {
		return nil, nil, err
	}
	utts, roster, err := analysis.ParseUtterances(body)
	if err != nil {
		return nil, nil, fmt.Errorf("diarize decode: %w", err)
	}
	return utts, roster, nil
}
