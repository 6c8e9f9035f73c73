package clients

import "context"

// --- Emotion (/detect) ---
type EmoReq struct {
	Text string `json:"text"`
}
type EmoScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
type EmoResp struct {
	Emotions        []EmoScore `json:"emotions"`
	DominantEmotion string     `json:"dominant_emotion"`
}

func (h *HTTP) Emotion(ctx context.Context, url, text string) (*EmoResp, error) {
	var out EmoResp
	if err := h.postJSON(ctx, "emotion", url+"/detect", EmoReq{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dominant falls back to the highest scored label when the service leaves
// dominant_emotion empty.
func (r *EmoResp) Dominant() string {
	if r.DominantEmotion != "" {
		return r.DominantEmotion
	}
	best := ""
	top := 0.0
	for _, e := range r.Emotions {
		if best == "" || e.Score > top {
			best, top = e.Label, e.Score
		}
	}
	return best
}
