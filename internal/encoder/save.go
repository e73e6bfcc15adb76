package encoder

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// Save encodes img in the format implied by path's extension and writes
// it atomically: the bytes go to a temp file in the target directory
// which is renamed over path only after a complete write. On failure no
// file is left behind. It returns the number of bytes written.
func (r *Registry) Save(path string, img image.Image, quality int) (int, error) {
	enc, err := r.ForPath(path)
	if err != nil {
		return 0, err
	}
	data, err := enc.Encode(img, quality)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", enc.Format(), err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return 0, fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("rename to %s: %w", path, err)
	}
	committed = true
	return len(data), nil
}
