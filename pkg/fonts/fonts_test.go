package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
)

func TestFaceFallsBackToEmbedded(t *testing.T) {
	l := Loader{Paths: []string{filepath.Join(t.TempDir(), "missing.ttf")}}
	face, src := l.Face(48)
	if src != SourceEmbedded {
		t.Fatalf("source = %s, want embedded", src)
	}
	if face.Metrics().Height <= 0 {
		t.Error("embedded face has no height")
	}
}

func TestFaceSkipsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, src := (Loader{Paths: []string{bad}}).Face(20); src != SourceEmbedded {
		t.Errorf("source = %s, want embedded", src)
	}
}

func TestFaceLoadsFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "GoBold.ttf")
	if err := os.WriteFile(good, gobold.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	l := Loader{Paths: []string{filepath.Join(dir, "missing.ttf"), good}}
	face, src := l.Face(32)
	if src != SourceFile {
		t.Fatalf("source = %s, want file", src)
	}
	small, _ := l.Face(8)
	if face.Metrics().Height <= small.Metrics().Height {
		t.Error("larger size should give a taller face")
	}
}

func TestFaceClampsSize(t *testing.T) {
	face, src := Loader{}.Face(0)
	if face == nil || src != SourceEmbedded {
		t.Errorf("Face(0) = %v, %s", face, src)
	}
}

func TestBitmap(t *testing.T) {
	if Bitmap().Metrics().Height <= 0 {
		t.Error("bitmap face has no height")
	}
}

func TestSourceString(t *testing.T) {
	tests := map[Source]string{
		SourceFile:     "file",
		SourceEmbedded: "embedded",
		SourceBitmap:   "bitmap",
		Source(9):      "Source(9)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
