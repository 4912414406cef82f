package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/teeforge/pkg/cache"
	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// smallDesign keeps renders fast.
const smallDesign = "width=512&height=512&layers=2&text=0&antialias=0"

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Status  string `json:"status"`
		Version struct {
			Version string `json:"version"`
		} `json:"version"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" || got.Version.Version == "" {
		t.Errorf("healthz = %s", body)
	}
}

func TestSeedAPI(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		query    string
		seed     uint32
		source   string
		filename string
	}{
		{"seed=42", 42, "integer", "tshirt_style_42.png"},
		{"seed=-1", 4294967295, "integer", "tshirt_style_4294967295.png"},
		{"seed=4294967298", 2, "integer", "tshirt_style_2.png"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := get(t, srv.URL+"/api/seed?"+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var got seedResponse
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Seed != tt.seed || got.Source != tt.source || got.Filename != tt.filename {
				t.Errorf("got %+v", got)
			}
		})
	}

	t.Run("text", func(t *testing.T) {
		_, body := get(t, srv.URL+"/api/seed?seed=hello")
		var got seedResponse
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		want, _ := seed.Resolve("hello")
		if got.Seed != uint32(want) || got.Source != "hash" {
			t.Errorf("got %+v, want seed %d from hash", got, want)
		}
	})

	t.Run("empty is random", func(t *testing.T) {
		_, body := get(t, srv.URL+"/api/seed")
		var got seedResponse
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Source != "random" {
			t.Errorf("source = %q", got.Source)
		}
	})
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv.URL+"/generate?seed=7&"+smallDesign)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="tshirt_style_7.png"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if s := resp.Header.Get(HeaderSeed); s != "7" {
		t.Errorf("%s = %q", HeaderSeed, s)
	}
	if c := resp.Header.Get(HeaderCache); c != "miss" {
		t.Errorf("%s = %q", HeaderCache, c)
	}
	if cc := resp.Header.Get("Cache-Control"); cc == "no-store" {
		t.Errorf("explicit seed should be cacheable, got %q", cc)
	}

	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Errorf("size = %v", b)
	}
}

func TestGenerateInline(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := get(t, srv.URL+"/generate?seed=7&inline=1&"+smallDesign)
	if cd := resp.Header.Get("Content-Disposition"); !strings.HasPrefix(cd, "inline;") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestGenerateRandomSeedNotCached(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := get(t, srv.URL+"/generate?"+smallDesign)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if resp.Header.Get(HeaderSeed) == "" {
		t.Error("missing seed header")
	}
}

func TestGenerateDeterministicAndCached(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, c)
	url := srv.URL + "/generate?seed=99&" + smallDesign

	first, body1 := get(t, url)
	second, body2 := get(t, url)
	if first.Header.Get(HeaderCache) != "miss" || second.Header.Get(HeaderCache) != "hit" {
		t.Errorf("cache headers = %q, %q", first.Header.Get(HeaderCache), second.Header.Get(HeaderCache))
	}
	if !bytes.Equal(body1, body2) {
		t.Error("cached response differs from generated one")
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"narrow", "width=100", "INVALID_DIMENSIONS"},
		{"tall", "height=9000", "INVALID_DIMENSIONS"},
		{"too many layers", "layers=30", "INVALID_LAYERS"},
		{"negative layers", "layers=-1", "INVALID_LAYERS"},
		{"unknown palette", "palette=neon", "INVALID_PALETTE"},
		{"unknown style", "style=plaid", "INVALID_STYLE"},
		{"non-integer", "width=wide", "INVALID_INPUT"},
		{"bad bool", "text=maybe", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv.URL+"/generate?"+tt.query)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var got map[string]string
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got["code"] != tt.code || got["error"] == "" {
				t.Errorf("body = %s, want code %s", body, tt.code)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("blank form", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		page := string(body)
		for _, want := range []string{`name="seed"`, `value="3000"`, `value="3600"`, `value="radial_gradient" selected`} {
			if !strings.Contains(page, want) {
				t.Errorf("page missing %q", want)
			}
		}
		if strings.Contains(page, "resolved-seed") {
			t.Error("blank form should not show a seed")
		}
	})

	t.Run("submitted", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/?seed=hello&"+smallDesign)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		want, _ := seed.Resolve("hello")
		page := string(body)
		if !strings.Contains(page, ">"+want.String()+"</span>") {
			t.Errorf("page does not show resolved seed %s", want)
		}
		if !strings.Contains(page, want.Filename()) {
			t.Errorf("page missing filename %s", want.Filename())
		}
		if !strings.Contains(page, "/generate?") {
			t.Error("page missing generate link")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/?width=10")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if !strings.Contains(string(body), "width must be between") {
			t.Errorf("page missing validation message")
		}
	})
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("assigned", func(t *testing.T) {
		resp, _ := get(t, srv.URL+"/healthz")
		if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("request id %q: %v", resp.Header.Get(RequestIDHeader), err)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
		req.Header.Set(RequestIDHeader, id)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if got := resp.Header.Get(RequestIDHeader); got != id {
			t.Errorf("request id = %q, want %q", got, id)
		}
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
			t.Error("malformed request id was kept")
		}
	})
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := get(t, srv.URL+"/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
