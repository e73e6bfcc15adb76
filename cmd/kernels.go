package cmd

import (
	"fmt"
	"io"

	"github.com/AnyUserName/bayer-cli/internal/kernel"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var kernelsOrder int

var kernelsCmd = &cobra.Command{
	Use:   "kernels [detail level]",
	Short: "Print the Bayer threshold matrices",
	Long: `Prints the threshold matrix of each detail level, or of one level, as
integer ranks out of N*N. With --order the matrix of side 2^order is
generated and printed as normalized thresholds instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKernels,
}

func init() {
	kernelsCmd.Flags().IntVar(&kernelsOrder, "order", 0, "generate the 2^order matrix (1-8)")
	rootCmd.AddCommand(kernelsCmd)
}

func runKernels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if kernelsOrder != 0 {
		m, err := kernel.Generate(kernelsOrder)
		if err != nil {
			return err
		}
		n, _ := m.Dims()
		fmt.Fprintf(out, "%dx%d\n%.4v\n", n, n, mat.Formatted(m, mat.Squeeze()))
		return nil
	}

	levels := kernel.Levels()
	if len(args) == 1 {
		l, err := kernel.ParseLevel(args[0])
		if err != nil {
			return err
		}
		levels = []kernel.Level{l}
	}
	for i, l := range levels {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printKernel(out, l)
	}
	return nil
}

func printKernel(w io.Writer, l kernel.Level) {
	k := kernel.For(l)
	n := k.Size()
	if l.Valid() {
		fmt.Fprintf(w, "level %s\n", l)
	} else {
		fmt.Fprintf(w, "level %d (unknown, uses %dx%d)\n", int(l), n, n)
	}
	var ranks mat.Dense
	ranks.Scale(float64(n*n), k.Dense())
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			fmt.Fprintf(w, "%3d", int(ranks.At(x, y)))
		}
		fmt.Fprintln(w)
	}
}
