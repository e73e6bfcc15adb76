package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry maps output file extensions to available encoders.
type Registry struct {
	encoders map[string]Encoder // by extension
	order    []Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	// Register all encoders. Only available ones will be used.
	all := []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&GIFEncoder{},
		&BMPEncoder{},
		&TIFFEncoder{},
		NewWebPEncoder(),
		NewAVIFEncoder(),
	}

	for _, enc := range all {
		if !enc.Available() {
			continue
		}
		r.order = append(r.order, enc)
		for _, ext := range enc.Extensions() {
			r.encoders[ext] = enc
		}
	}

	return r
}

// Get returns the encoder for a file extension (with or without the
// leading dot), or nil if unavailable.
func (r *Registry) Get(ext string) Encoder {
	return r.encoders[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// ForPath picks the encoder from the extension of path.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension to infer the output format from", path)
	}
	enc := r.Get(ext)
	if enc == nil {
		return nil, fmt.Errorf("%s: unsupported output format %q (%s)", path, ext, r)
	}
	return enc, nil
}

// Available returns all available format names in priority order.
func (r *Registry) Available() []string {
	result := make([]string, 0, len(r.order))
	for _, enc := range r.order {
		result = append(result, enc.Format())
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
