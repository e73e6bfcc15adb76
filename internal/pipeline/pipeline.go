package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/AnyUserName/bayer-cli/internal/dither"
	"github.com/AnyUserName/bayer-cli/internal/encoder"
	"github.com/AnyUserName/bayer-cli/internal/palette"
)

// Config holds all parameters for a static conversion.
type Config struct {
	Input         string // image file or directory
	Output        string // file, or directory for "<stem>-dithered<ext>" names
	Params        dither.Params
	Palette       palette.Palette
	PaletteMethod palette.Method // derive the palette per image when set
	Quality       int
	Workers       int // directory mode only
	Verbose       bool
}

// Result describes one written file.
type Result struct {
	Input  string
	Output string
	Bytes  int
}

// Pipeline runs static conversions.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Run converts the configured input. A file input yields one result; a
// directory input converts every image in it into the output directory.
func (p *Pipeline) Run() ([]Result, error) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[bayer] %s\n", p.registry.String())
	}

	info, err := os.Stat(p.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return p.runDir()
	}

	out := OutputPath(p.cfg.Input, p.cfg.Output)
	r := convertImage(p.cfg.Input, out, p.cfg, p.registry)
	if r.err != nil {
		return nil, r.err
	}
	return []Result{{Input: p.cfg.Input, Output: r.output, Bytes: r.bytes}}, nil
}

func (p *Pipeline) runDir() ([]Result, error) {
	sources, err := ScanImages(p.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.Input)
	}
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[bayer] found %d images\n", len(sources))
	}

	results := make([]convertResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		dir := filepath.Join(p.cfg.Output, filepath.Dir(filepath.FromSlash(src.RelPath)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		out := filepath.Join(dir, src.Stem+ditheredSuffix+src.Ext)

		wg.Add(1)
		go func(idx int, s Source, out string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[bayer] processing: %s (%d bytes)\n", s.RelPath, s.Size)
			}
			results[idx] = convertImage(s.AbsPath, out, p.cfg, p.registry)
		}(i, src, out)
	}
	wg.Wait()

	var done []Result
	var errs []error
	for i, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		done = append(done, Result{Input: sources[i].AbsPath, Output: r.output, Bytes: r.bytes})
	}

	// Report errors but don't fail the entire run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[bayer] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to convert", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[bayer] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}
	return done, nil
}
