package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planlab/sascegar/internal/pipeline"
	"github.com/planlab/sascegar/wire"
)

var preprocessOutput string

var preprocessCmd = &cobra.Command{
	Use:   "preprocess <input.sas>",
	Short: "Run the causal-graph/ordering/DTG/successor-generator pipeline over a SAS+ translator-output file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreprocess,
}

func init() {
	preprocessCmd.Flags().StringVarP(&preprocessOutput, "output", "o", "", "output file (default: stdout)")
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "sascegar: input error:", err)
		os.Exit(ExitInputError)
	}
	defer in.Close()

	t, err := wire.Parse(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sascegar: input error:", err)
		os.Exit(ExitInputError)
	}

	out, _, err := pipeline.Preprocess(t)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sascegar: critical error:", err)
		os.Exit(ExitCriticalError)
	}

	w := os.Stdout
	if preprocessOutput != "" {
		f, err := os.Create(preprocessOutput)
		if err != nil {
			fmt.Fprintln(os.Stderr, "sascegar: critical error:", err)
			os.Exit(ExitCriticalError)
		}
		defer f.Close()
		w = f
	}

	if err := wire.Write(w, out); err != nil {
		fmt.Fprintln(os.Stderr, "sascegar: critical error:", err)
		os.Exit(ExitCriticalError)
	}
	return nil
}
