package clients

import (
	"context"

	"github.com/Poli-Reddy/insightmeet/analysis"
)

// --- Visualization (/dashboard) ---
type PublishReq struct {
	SessionID string                 `json:"session_id"`
	Analysis  *analysis.AnalysisData `json:"analysis"`
}

type PublishResp struct{ Status, Path string }

// Publish hands a finished bundle to the dashboard renderer.
func (h *HTTP) Publish(ctx context.Context, url, sessionID string, data *analysis.AnalysisData) (*PublishResp, error) {
	var out PublishResp
	if err := h.postJSON(ctx, "viz dashboard", url+"/dashboard", PublishReq{SessionID: sessionID, Analysis: data}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
