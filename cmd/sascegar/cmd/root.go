package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd is the base command; preprocess and solve are its subcommands.
var rootCmd = &cobra.Command{
	Use:   "sascegar",
	Short: "SAS+ preprocessor and Cartesian-CEGAR cost-saturation heuristic builder",
	Long: `sascegar preprocesses a SAS+ translator-output file into the search-ready
wire format (causal graph, domain-transition graphs, successor generator),
and builds an admissible cost-saturation heuristic over Cartesian
abstractions refined by counterexample-guided abstraction refinement
(CEGAR).`,
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional YAML config file")
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(solveCmd)
}
