package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// formFields are the query parameters that describe a design.
var formFields = []string{
	"seed", "width", "height", "transparent", "palette", "style",
	"layers", "text", "lines", "noise", "antialias",
}

// hasDesignParams reports whether q names any design parameter.
func hasDesignParams(q url.Values) bool {
	for _, f := range formFields {
		if _, ok := q[f]; ok {
			return true
		}
	}
	return false
}

// parseOptions reads design options from q over the defaults and applies
// the input-boundary validation.
func parseOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.Seed = q.Get("seed")
	if v := q.Get("palette"); v != "" {
		opts.Palette = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}

	var err error
	if opts.Width, err = intParam(q, "width", opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "height", opts.Height); err != nil {
		return opts, err
	}
	if opts.Layers, err = intParam(q, "layers", opts.Layers); err != nil {
		return opts, err
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"transparent", &opts.Transparent},
		{"text", &opts.Text},
		{"lines", &opts.Lines},
		{"noise", &opts.Noise},
		{"antialias", &opts.Antialias},
	}
	for _, b := range bools {
		if *b.dst, err = boolParam(q, b.name, *b.dst); err != nil {
			return opts, err
		}
	}

	if err := opts.ValidateBounds(); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

// boolParam uses the last value of the field, so a form can send a hidden
// "0" followed by a checkbox "1".
func boolParam(q url.Values, name string, def bool) (bool, error) {
	vals, ok := q[name]
	if !ok || len(vals) == 0 {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(vals[len(vals)-1])) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no", "":
		return false, nil
	default:
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, vals[len(vals)-1])
	}
}

// encodeOptions is the inverse of parseOptions with the seed pinned.
func encodeOptions(opts pipeline.Options, seed string) url.Values {
	q := url.Values{}
	q.Set("seed", seed)
	q.Set("width", strconv.Itoa(opts.Width))
	q.Set("height", strconv.Itoa(opts.Height))
	q.Set("palette", opts.Palette)
	q.Set("style", opts.Style)
	q.Set("layers", strconv.Itoa(opts.Layers))
	q.Set("transparent", strconv.FormatBool(opts.Transparent))
	q.Set("text", strconv.FormatBool(opts.Text))
	q.Set("lines", strconv.FormatBool(opts.Lines))
	q.Set("noise", strconv.FormatBool(opts.Noise))
	q.Set("antialias", strconv.FormatBool(opts.Antialias))
	return q
}
