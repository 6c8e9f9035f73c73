package clients

import (
	"context"
	"strings"

	"github.com/Poli-Reddy/insightmeet/analysis"
)

// --- Sentiment (/sentiment) ---
type SentimentReq struct {
	Text string `json:"text"`
}
type SentimentResp struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

func (h *HTTP) Sentiment(ctx context.Context, url, text string) (*SentimentResp, error) {
	var out SentimentResp
	if err := h.postJSON(ctx, "sentiment", url+"/sentiment", SentimentReq{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Label normalizes the free-text verdict ("positive", "NEGATIVE", ...).
// Unknown verdicts are bucketed from the score.
func (r *SentimentResp) Label() analysis.Sentiment {
	switch strings.ToLower(strings.TrimSpace(r.Sentiment)) {
	case "positive":
		return analysis.Positive
	case "negative":
		return analysis.Negative
	case "neutral":
		return analysis.Neutral
	}
	return analysis.SentimentForScore(r.Score)
}
