// Package fonts resolves the font face used by the text overlay.
//
// Lookup never fails: a [Loader] tries its TrueType files in order, then the
// embedded Go Bold font, then the 7x13 bitmap face.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// DefaultPaths is the font lookup list used when none is configured.
var DefaultPaths = []string{"Arial.ttf"}

// Source reports which step of the fallback chain produced a face.
type Source int

const (
	SourceFile Source = iota
	SourceEmbedded
	SourceBitmap
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceEmbedded:
		return "embedded"
	case SourceBitmap:
		return "bitmap"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Loader looks up scalable fonts by path.
type Loader struct {
	Paths  []string
	Logger *log.Logger
}

// Face returns a face of the given pixel size and where it came from.
func (l Loader) Face(size float64) (font.Face, Source) {
	size = max(size, 1)
	for _, path := range l.Paths {
		f, err := parseFile(path)
		if err != nil {
			l.debug("font unavailable", "path", path, "error", err)
			continue
		}
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), SourceFile
	}

	if f, err := embedded(); err == nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			return face, SourceEmbedded
		}
		l.debug("embedded font face failed", "error", err)
	}
	return Bitmap(), SourceBitmap
}

func (l Loader) debug(msg string, kv ...any) {
	if l.Logger != nil {
		l.Logger.Debug(msg, kv...)
	}
}

// Bitmap returns the built-in fixed-size face.
func Bitmap() font.Face {
	return basicfont.Face7x13
}

// Parsed files are kept for the life of the process.
var files sync.Map // path -> *truetype.Font

func parseFile(path string) (*truetype.Font, error) {
	if f, ok := files.Load(path); ok {
		return f.(*truetype.Font), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	files.Store(path, f)
	return f, nil
}

var (
	goBold     *opentype.Font
	goBoldErr  error
	goBoldOnce sync.Once
)

// embedded parses the Go Bold font once.
func embedded() (*opentype.Font, error) {
	goBoldOnce.Do(func() {
		goBold, goBoldErr = opentype.Parse(gobold.TTF)
	})
	return goBold, goBoldErr
}
