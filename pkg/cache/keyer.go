package cache

// DesignKeyOpts are the controls that, together with the resolved seed,
// determine a design's bytes.
type DesignKeyOpts struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Transparent bool     `json:"transparent"`
	Palette     string   `json:"palette"`
	Style       string   `json:"style"`
	Layers      int      `json:"layers"`
	Text        bool     `json:"text"`
	Lines       bool     `json:"lines"`
	Noise       bool     `json:"noise"`
	Antialias   bool     `json:"antialias"`
	Fonts       []string `json:"fonts,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DesignKey returns the key of the encoded design for seed and opts.
	DesignKey(seed uint32, opts DesignKeyOpts) string
}

// DefaultKeyer hashes the key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DesignKey returns "design:<sha256 of seed and opts>".
func (DefaultKeyer) DesignKey(seed uint32, opts DesignKeyOpts) string {
	return hashKey("design", seed, opts)
}
