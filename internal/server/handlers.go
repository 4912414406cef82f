package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/teeforge/pkg/buildinfo"
	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/observability"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// Response headers set by /generate.
const (
	HeaderSeed  = "X-Teeforge-Seed"
	HeaderCache = "X-Teeforge-Cache"
)

type seedResponse struct {
	Seed     uint32 `json:"seed"`
	Source   string `json:"source"`
	Filename string `json:"filename"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	sd, src := s.runner.ResolveSeed(r.URL.Query().Get("seed"))
	writeJSON(w, http.StatusOK, seedResponse{
		Seed:     uint32(sd),
		Source:   src.String(),
		Filename: sd.Filename(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := parseOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	sd, src := s.runner.ResolveSeed(opts.Seed)
	res, err := s.runner.Run(r.Context(), sd, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	disposition := "attachment"
	if on, _ := boolParam(q, "inline", false); on {
		disposition = "inline"
	}
	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Content-Length", strconv.Itoa(len(res.PNG)))
	h.Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, res.Filename))
	h.Set(HeaderSeed, res.Seed.String())
	if res.CacheHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	if src == seed.SourceRandom {
		h.Set("Cache-Control", "no-store")
	} else {
		h.Set("Cache-Control", "public, max-age=86400")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PNG)
}

// pageData feeds templates/index.html.
type pageData struct {
	Options  pipeline.Options
	Palettes []palette.Strategy
	Styles   []canvas.Style
	Min, Max int
	MaxLayer int
	Version  string

	// Set once the form was submitted.
	Submitted   bool
	Seed        string
	SeedSource  string
	Filename    string
	PreviewURL  string
	DownloadURL string
	Error       string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Options:  pipeline.DefaultOptions(),
		Palettes: palette.Strategies,
		Styles:   canvas.Styles,
		Min:      pipeline.MinDimension,
		Max:      pipeline.MaxDimension,
		MaxLayer: pipeline.MaxLayers,
		Version:  buildinfo.Version,
	}
	status := http.StatusOK

	if hasDesignParams(q) {
		data.Submitted = true
		opts, err := parseOptions(q)
		data.Options = opts
		if err != nil {
			data.Error = errors.UserMessage(err)
			status = http.StatusBadRequest
		} else {
			// Resolve once and pin the seed in both links, so preview and
			// download are the same design even for a random seed.
			sd, src := s.runner.ResolveSeed(opts.Seed)
			pinned := encodeOptions(opts, sd.String())
			data.Seed = sd.String()
			data.SeedSource = src.String()
			data.Filename = sd.Filename()
			data.DownloadURL = "/generate?" + pinned.Encode()
			pinned.Set("inline", "1")
			data.PreviewURL = "/generate?" + pinned.Encode()
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	code := errors.GetCode(err)
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
