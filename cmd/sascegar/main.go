// Command sascegar is the thin driver binary exposing the preprocessor and
// the Cartesian-CEGAR cost-saturation heuristic builder through two
// subcommands.
package main

import "github.com/planlab/sascegar/cmd/sascegar/cmd"

func main() {
	cmd.Execute()
}
