package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Poli-Reddy/insightmeet/analysis"
)

func multipartFile(t *testing.T, r *http.Request) (string, string) {
	t.Helper()
	f, hdr, err := r.FormFile("file")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	return hdr.Filename, string(b)
}

func TestDiarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/diarize", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		name, body := multipartFile(t, r)
		assert.Equal(t, "meeting.wav", name)
		assert.Equal(t, "RIFF", body)
		_, _ = io.WriteString(w, `{"utterances":[{"speaker":0,"text":"Hello everyone."},{"speaker":1,"text":"Hi"}]}`)
	}))
	defer srv.Close()

	utts, roster, err := NewHTTP(time.Second).Diarize(context.Background(), srv.URL, "/tmp/x/meeting.wav", strings.NewReader("RIFF"))
	require.NoError(t, err)
	assert.Nil(t, roster)
	assert.Equal(t, []analysis.Utterance{{SpeakerIndex: 0, Text: "Hello everyone."}, {SpeakerIndex: 1, Text: "Hi"}}, utts)
}

func TestDiarize_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"utterances":[{"speaker":-3,"text":"x"}]}`)
	}))
	defer srv.Close()

	_, _, err := NewHTTP(time.Second).Diarize(context.Background(), srv.URL, "a.wav", strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrMalformedUtterance)
	assert.Contains(t, err.Error(), "diarize decode")
}

func TestDiarize_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, _, err := NewHTTP(time.Second).Diarize(context.Background(), srv.URL, "a.wav", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diarize 503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transcribe", r.URL.Path)
		_, _ = io.WriteString(w, `{"segments":[{"start":0,"end":1.5,"text":"hello"}],"language":"en"}`)
	}))
	defer srv.Close()

	out, err := NewHTTP(time.Second).Transcribe(context.Background(), srv.URL, "a.wav", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "en", out.Language)
	require.Len(t, out.Segments, 1)
	assert.Equal(t, "hello", out.Segments[0].Text)
}

func TestSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sentiment", r.URL.Path)
		var req SentimentReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "great idea", req.Text)
		_, _ = io.WriteString(w, `{"sentiment":"POSITIVE","score":0.9}`)
	}))
	defer srv.Close()

	out, err := NewHTTP(time.Second).Sentiment(context.Background(), srv.URL, "great idea")
	require.NoError(t, err)
	assert.Equal(t, analysis.Positive, out.Label())
	assert.Equal(t, 0.9, out.Score)
}

func TestSentimentResp_Label(t *testing.T) {
	tests := []struct {
		in   SentimentResp
		want analysis.Sentiment
	}{
		{SentimentResp{Sentiment: "negative"}, analysis.Negative},
		{SentimentResp{Sentiment: " Neutral "}, analysis.Neutral},
		{SentimentResp{Sentiment: "mixed", Score: -0.8}, analysis.Negative},
		{SentimentResp{Score: 0.1}, analysis.Neutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Label(), "%+v", tt.in)
	}
}

func TestEmotion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect", r.URL.Path)
		_, _ = io.WriteString(w, `{"emotions":[{"label":"joy","score":0.2},{"label":"anger","score":0.7}]}`)
	}))
	defer srv.Close()

	out, err := NewHTTP(time.Second).Emotion(context.Background(), srv.URL, "hm")
	require.NoError(t, err)
	assert.Equal(t, "anger", out.Dominant())

	out.DominantEmotion = "calm"
	assert.Equal(t, "calm", out.Dominant())
	assert.Equal(t, "", (&EmoResp{}).Dominant())
}

func TestSummarize_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	_, err := NewHTTP(time.Second).Summarize(context.Background(), srv.URL, "A: hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary decode")
}

func TestPublish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard", r.URL.Path)
		var req struct {
			SessionID string          `json:"session_id"`
			Analysis  json.RawMessage `json:"analysis"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s1", req.SessionID)
		assert.Contains(t, string(req.Analysis), `"relationshipGraph"`)
		_, _ = io.WriteString(w, `{"status":"ok","path":"/d/s1"}`)
	}))
	defer srv.Close()

	data, err := analysis.Generate(nil)
	require.NoError(t, err)
	out, err := NewHTTP(time.Second).Publish(context.Background(), srv.URL, "s1", data)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "/d/s1", out.Path)
}

func TestContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTP(time.Second).Sentiment(ctx, srv.URL, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
