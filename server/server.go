// Package server exposes the upload boundary: one multipart upload in, one
// analysis bundle out.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Poli-Reddy/insightmeet/analysis"
	"github.com/Poli-Reddy/insightmeet/metrics"
	"github.com/Poli-Reddy/insightmeet/orchestrator"
)

const DefaultMaxUploadBytes = 20 * 1024 * 1024

// Analyzer is the part of the pipeline the server needs.
type Analyzer interface {
	Analyze(ctx context.Context, filename string, audio io.Reader) (*orchestrator.Result, error)
}

type Server struct {
	analyzer Analyzer
	log      logrus.FieldLogger
	metrics  *metrics.Metrics
	maxBytes int64
}

func New(a Analyzer, log logrus.FieldLogger, m *metrics.Metrics, maxBytes int64) *Server {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if m == nil {
		m = metrics.New()
	}
	return &Server{analyzer: a, log: log, metrics: m, maxBytes: maxBytes}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload", s.upload)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type uploadResponse struct {
	SessionID string                 `json:"sessionId"`
	Analysis  *analysis.AnalysisData `json:"analysis"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, status int, label string, body errorBody) {
	s.metrics.RecordUpload(label)
	writeJSON(w, status, body)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	log := s.log.WithField("remote", r.RemoteAddr)

	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		log.WithField("content_type", ct).Warn("invalid content type")
		s.fail(w, http.StatusBadRequest, "bad_request", errorBody{Error: "Invalid content type", Details: ct})
		return
	}

	// Leave room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+1<<20)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			log.Warn("upload exceeds limit")
			s.fail(w, http.StatusRequestEntityTooLarge, "too_large", errorBody{Error: "File too large", Details: tooBig.Limit})
			return
		}
		log.WithError(err).Warn("no file uploaded")
		s.fail(w, http.StatusBadRequest, "bad_request", errorBody{Error: "No file uploaded"})
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer func(f *multipart.Form) { _ = f.RemoveAll() }(r.MultipartForm)
	}

	if hdr.Size > s.maxBytes {
		log.WithField("size", hdr.Size).Warn("file too large")
		s.fail(w, http.StatusRequestEntityTooLarge, "too_large", errorBody{Error: "File too large", Details: hdr.Size})
		return
	}

	start := time.Now()
	res, err := s.analyzer.Analyze(r.Context(), hdr.Filename, file)
	if err != nil {
		if errors.Is(err, analysis.ErrMalformedUtterance) {
			log.WithError(err).Warn("diarization returned malformed utterances")
			s.fail(w, http.StatusUnprocessableEntity, "malformed", errorBody{Error: "Malformed diarization output", Details: err.Error()})
			return
		}
		log.WithError(err).Error("analysis failed")
		s.fail(w, http.StatusInternalServerError, "error", errorBody{Error: "Analysis failed", Details: err.Error()})
		return
	}

	s.metrics.RecordUpload("ok")
	log.WithFields(logrus.Fields{
		"session":  res.SessionID,
		"file":     hdr.Filename,
		"size":     hdr.Size,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("upload analyzed")
	writeJSON(w, http.StatusOK, uploadResponse{SessionID: res.SessionID, Analysis: res.Analysis})
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
