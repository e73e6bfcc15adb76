package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
)

// Atomic counter for unique temp file names.
var tempCounter atomic.Int64

// externalEncoder shells out to a command-line encoder that reads a PNG
// file and writes its output to another file. This avoids CGO.
type externalEncoder struct {
	format string
	exts   []string
	tool   string
	hint   string
	args   func(quality int, src, dst string) []string

	once sync.Once
	path string
}

// NewWebPEncoder encodes with cwebp.
// Install: brew install webp / apt install webp
func NewWebPEncoder() Encoder {
	return &externalEncoder{
		format: "webp",
		exts:   []string{"webp"},
		tool:   "cwebp",
		hint:   "brew install webp",
		args: func(q int, src, dst string) []string {
			// two-tone frames compress best losslessly; -q sets effort there
			return []string{"-lossless", "-q", strconv.Itoa(q), "-m", "6", "-quiet", src, "-o", dst}
		},
	}
}

// NewAVIFEncoder encodes with avifenc.
// Install: brew install libavif / apt install libavif-bin
func NewAVIFEncoder() Encoder {
	return &externalEncoder{
		format: "avif",
		exts:   []string{"avif"},
		tool:   "avifenc",
		hint:   "brew install libavif",
		args: func(q int, src, dst string) []string {
			// avifenc quality is 0-63, lower is better
			aq := strconv.Itoa(63 - q*63/100)
			return []string{"--min", aq, "--max", aq, "--speed", "6", "-j", "all", src, dst}
		},
	}
}

func (e *externalEncoder) Format() string       { return e.format }
func (e *externalEncoder) Extensions() []string { return e.exts }

func (e *externalEncoder) Available() bool {
	e.once.Do(func() {
		if path, err := exec.LookPath(e.tool); err == nil {
			e.path = path
		}
	})
	return e.path != ""
}

func (e *externalEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("%s not found in PATH; install with: %s", e.tool, e.hint)
	}

	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("bayer_%s_src_%d_*.png", e.format, id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	dstFile, err := os.CreateTemp("", fmt.Sprintf("bayer_%s_dst_%d_*.%s", e.format, id, e.exts[0]))
	if err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	if err := png.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := srcFile.Close(); err != nil {
		return nil, fmt.Errorf("close temp png: %w", err)
	}

	cmd := exec.Command(e.path, e.args(clampQuality(quality), srcPath, dstPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", e.tool, err, string(out))
	}
	return os.ReadFile(dstPath)
}
