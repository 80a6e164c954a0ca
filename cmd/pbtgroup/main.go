// Command pbtgroup is the engine's process entry point (spec §6 "CLI
// surface"): it wires the host channel transport (a pipe pair or a TCP
// socket), parses the single-line problem document, runs the search
// driver to completion, and reports back. Exit code 0 on completion —
// even with zero solutions found — non-zero only on channel or I/O
// errors (spec §6 "Exit code").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "pbtgroup",
		Short: "Partition-backtracking solver for permutation-group problems",
		Long: `pbtgroup reads a problem description (constraints over a finite point
set) and computes generators for the intersection of the groups they
define, a coset transporter, or a canonical image, by partition
backtracking with a trace discipline and graph-based refinement.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}

	cmd.Flags().StringVar(&f.input, "input", "", "path to the problem JSON file (default stdin)")
	cmd.Flags().StringVar(&f.output, "output", "", "path to write the result JSON (default stdout)")
	cmd.Flags().IntVar(&f.inpipe, "inpipe", -1, "file descriptor to read host-channel requests from")
	cmd.Flags().IntVar(&f.outpipe, "outpipe", -1, "file descriptor to write host-channel replies to")
	cmd.Flags().IntVar(&f.port, "port", 0, "TCP port to dial for the host channel")
	cmd.Flags().StringVar(&f.trace, "trace", "", "write the vole.trace event log to this path")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "suppress structured logging")

	return cmd
}

// flags mirrors the CLI surface of spec §6 verbatim.
type flags struct {
	input   string
	output  string
	inpipe  int
	outpipe int
	port    int
	trace   string
	quiet   bool
}
