package clients

import "context"

// --- Summary (/summarize) ---
type SummaryReq struct {
	Transcript string `json:"transcript"`
}
type SummaryResp struct {
	Points           []string `json:"points"`
	OverallSentiment string   `json:"overall_sentiment"`
}

func (h *HTTP) Summarize(ctx context.Context, url, transcript string) (*SummaryResp, error) {
	var out SummaryResp
	if err := h.postJSON(ctx, "summary", url+"/summarize", SummaryReq{Transcript: transcript}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
