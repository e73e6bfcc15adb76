package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Stem is the file name without extension.
	Stem string
	// Ext is the original extension including the dot, case preserved.
	Ext string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// ditheredSuffix marks files written by this tool.
const ditheredSuffix = "-dithered"

// ScanImages walks the input directory and returns all image sources,
// skipping hidden directories and earlier dithered outputs.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if !imageExtensions[strings.ToLower(ext)] {
			return nil
		}
		stem := strings.TrimSuffix(info.Name(), ext)
		if strings.HasSuffix(stem, ditheredSuffix) {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Stem:    stem,
			Ext:     ext,
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}

// DitheredName returns "<stem>-dithered<ext>" for an input path.
func DitheredName(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ditheredSuffix + ext
}

// OutputPath resolves where a single conversion is written. An existing
// directory, or a path ending in a separator, receives the
// "<stem>-dithered<ext>" name; anything else is used as is.
func OutputPath(inputPath, output string) string {
	if strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") {
		return filepath.Join(output, DitheredName(inputPath))
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, DitheredName(inputPath))
	}
	return output
}
