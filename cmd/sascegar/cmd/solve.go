package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planlab/sascegar/heuristic"
	"github.com/planlab/sascegar/internal/config"
	"github.com/planlab/sascegar/internal/pipeline"
	"github.com/planlab/sascegar/wire"
)

var solveCmd = &cobra.Command{
	Use:   "solve <input.sas>",
	Short: "Build a cost-saturation heuristic and report its estimate for the task's initial state",
	Long: `solve preprocesses a SAS+ translator-output file and builds an admissible
cost-saturation heuristic over Cartesian abstractions refined by CEGAR. It
reports the heuristic's value at the task's initial state; an outer
search loop that consumes this estimate to find a concrete plan is outside
this repository's scope.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	config.BindFlags(solveCmd.Flags())
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		fmt.Fprintln(os.Stderr, "sascegar: input error:", err)
		os.Exit(ExitInputError)
	}
	logger := cfg.Logger()

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

	facade, err := pipeline.Solve(out, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sascegar: critical error:", err)
		os.Exit(ExitCriticalError)
	}

	h := facade.Value(out.Task.Initial)
	if h == heuristic.DeadEnd {
		fmt.Println("unsolvable: initial state is a dead end under every retained abstraction")
		os.Exit(ExitUnsolvableProved)
	}

	fmt.Printf("initial heuristic estimate: %d\n", h)
	return nil
}
