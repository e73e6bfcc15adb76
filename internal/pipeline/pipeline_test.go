package pipeline

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/bayer-cli/internal/dither"
	"github.com/AnyUserName/bayer-cli/internal/kernel"
	"github.com/AnyUserName/bayer-cli/internal/palette"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, gradient(w, h)); err != nil {
		t.Fatal(err)
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	if got := OutputPath("in/photo.jpg", filepath.Join(dir, "x.png")); got != filepath.Join(dir, "x.png") {
		t.Errorf("file output: %s", got)
	}
	if got := OutputPath("in/photo.jpg", dir); got != filepath.Join(dir, "photo-dithered.jpg") {
		t.Errorf("dir output: %s", got)
	}
	if got := OutputPath("photo.PNG", "new/"); got != filepath.Join("new", "photo-dithered.PNG") {
		t.Errorf("trailing slash output: %s", got)
	}
}

func TestRun_SingleFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "src.png")
	writePNG(t, in, 40, 30)

	results, err := New(Config{
		Input:   in,
		Output:  dir,
		Params:  dither.Params{Level: kernel.Level3},
		Palette: palette.Default,
	}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results: %d", len(results))
	}
	want := filepath.Join(dir, "src-dithered.png")
	if results[0].Output != want {
		t.Errorf("output: %s, want %s", results[0].Output, want)
	}

	got, err := Load(want)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	if got.Bounds().Dx() != 40 || got.Bounds().Dy() != 30 {
		t.Errorf("size: %v", got.Bounds())
	}
	expect := dither.Params{Level: kernel.Level3}.Apply(gradient(40, 30), palette.Default)
	for i := range expect.Pix {
		if got.Pix[i] != expect.Pix[i] {
			t.Fatalf("pix[%d]: got %d, want %d", i, got.Pix[i], expect.Pix[i])
		}
	}
}

func TestRun_MissingInput(t *testing.T) {
	_, err := New(Config{Input: filepath.Join(t.TempDir(), "nope.png"), Output: "x.png"}).Run()
	if err == nil {
		t.Fatal("missing input accepted")
	}
}

func TestRun_UndecodableInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(in, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	if _, err := New(Config{Input: in, Output: out, Palette: palette.Default}).Run(); err == nil {
		t.Fatal("undecodable input accepted")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written for failed conversion")
	}
}

func TestRun_Directory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), 8, 8)
	writePNG(t, filepath.Join(in, "nested", "b.png"), 9, 5)
	writePNG(t, filepath.Join(in, ".hidden", "c.png"), 4, 4)
	writePNG(t, filepath.Join(in, "a-dithered.png"), 4, 4)

	results, err := New(Config{Input: in, Output: out, Palette: palette.Default, Workers: 2}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results: %+v", results)
	}
	for _, rel := range []string{"a-dithered.png", filepath.Join("nested", "b-dithered.png")} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("%s: %v", rel, err)
		}
	}
}

func TestRun_DerivedPalette(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "src.png")
	writePNG(t, in, 32, 32)

	results, err := New(Config{
		Input:         in,
		Output:        filepath.Join(dir, "out.png"),
		Params:        dither.DefaultParams(),
		PaletteMethod: palette.MethodKMeans,
	}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := Load(results[0].Output)
	if err != nil {
		t.Fatal(err)
	}
	colors := map[[3]uint8]bool{}
	for i := 0; i < len(img.Pix); i += 4 {
		colors[[3]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}] = true
	}
	if len(colors) > 2 {
		t.Errorf("derived palette output has %d colors", len(colors))
	}
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "one.png"), 2, 2)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 || sources[0].Stem != "one" || sources[0].Ext != ".png" {
		t.Fatalf("sources: %+v", sources)
	}
	info, err := os.Stat(filepath.Join(dir, "one.png"))
	if err != nil {
		t.Fatal(err)
	}
	if sources[0].Size != info.Size() {
		t.Errorf("size: got %d, want %d", sources[0].Size, info.Size())
	}
}
