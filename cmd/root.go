package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/AnyUserName/bayer-cli/internal/dither"
	"github.com/AnyUserName/bayer-cli/internal/kernel"
	"github.com/AnyUserName/bayer-cli/internal/palette"
	"github.com/spf13/cobra"
)

var (
	version     = "0.1.0"
	verbose     bool
	paletteName string
	fgHex       string
	bgHex       string
	quality     int
	invert      bool
)

const usageLine = "usage: bayer <convert|view> <input> <output> [detail level] [darkness]"

var rootCmd = &cobra.Command{
	Use:   "bayer",
	Short: "Ordered (Bayer matrix) dithering with a live terminal preview",
	Long: `bayer turns any image into a two-tone picture with ordered dithering.

Without a subcommand bayer behaves like convert.

convert writes the dithered image to disk; view opens an interactive
preview in the terminal where zoom, detail level, darkness and inversion
can be changed live and the current frame saved.

Detail levels: 1 = 2x2, 2 = 4x4 (default), 3 = 8x8 Bayer matrix.
Darkness is added to every threshold; positive values darken, negative
values lighten. Flags go before <input>.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(4),
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Flags go before the positional arguments so a negative darkness
	// such as -0.1 is not read as a shorthand flag.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&paletteName, "palette", "p", "classic",
		fmt.Sprintf("two-tone palette: %s, or derived: %s, %s",
			strings.Join(palette.Names(), ", "), palette.MethodDominant, palette.MethodKMeans))
	rootCmd.PersistentFlags().StringVar(&fgHex, "fg", "", "foreground color as hex, overrides the palette")
	rootCmd.PersistentFlags().StringVar(&bgHex, "bg", "", "background color as hex, overrides the palette")
	rootCmd.PersistentFlags().BoolVarP(&invert, "invert", "i", false, "start with inverted thresholding")
	rootCmd.PersistentFlags().IntVarP(&quality, "quality", "q", 0, "quality 1-100 for lossy output formats (0 = default)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"bayer %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[bayer] "+format+"\n", args...)
	}
}

// positional holds the shared <input> <output> [level] [darkness] arguments.
type positional struct {
	input  string
	output string
	params dither.Params
}

// parsePositional reads the positional arguments. ok is false when
// fewer than two were given and only the usage line should be printed.
func parsePositional(args []string) (pos positional, ok bool, err error) {
	if len(args) < 2 {
		return pos, false, nil
	}
	pos.input = args[0]
	pos.output = args[1]
	pos.params = dither.DefaultParams()
	pos.params.Inverted = invert

	if len(args) > 2 {
		if pos.params.Level, err = kernel.ParseLevel(args[2]); err != nil {
			return pos, true, err
		}
	}
	if len(args) > 3 {
		d, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil {
			return pos, true, fmt.Errorf("invalid darkness value %q: %w", args[3], err)
		}
		pos.params.Darkness = d
	}
	return pos, true, nil
}

// resolvePalette turns the palette flags into a fixed palette or a
// derivation method.
func resolvePalette() (palette.Palette, palette.Method, error) {
	switch m := palette.Method(strings.ToLower(paletteName)); m {
	case palette.MethodDominant, palette.MethodKMeans:
		if fgHex != "" || bgHex != "" {
			return palette.Palette{}, "", fmt.Errorf("--fg/--bg cannot be combined with --palette %s", m)
		}
		return palette.Palette{}, m, nil
	}

	pal := palette.Get(paletteName)
	if fgHex != "" {
		c, err := palette.Parse(fgHex)
		if err != nil {
			return pal, "", fmt.Errorf("--fg: %w", err)
		}
		pal.Foreground = c
	}
	if bgHex != "" {
		c, err := palette.Parse(bgHex)
		if err != nil {
			return pal, "", fmt.Errorf("--bg: %w", err)
		}
		pal.Background = c
	}
	if !pal.Distinct() {
		fg, _ := pal.Hex()
		return pal, "", fmt.Errorf("foreground and background are both %s", fg)
	}
	return pal, "", nil
}

// printUsage writes the one-line usage. Missing arguments are not an
// error: the process exits 0.
func printUsage(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), usageLine)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
