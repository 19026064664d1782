package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	vortex "github.com/Giulio2002/vortexhash"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Hash lines read from stdin until 'exit'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Enter data to hash (or 'exit' to quit):")
			for in.Scan() {
				line := strings.TrimSpace(in.Text())
				if line == "exit" {
					break
				}
				if line == "" {
					continue
				}
				fmt.Fprintf(out, "Input: %s\nHash:  %s\n\n", line, vortex.SumFast([]byte(line)))
				fmt.Fprintln(out, "Enter next data (or 'exit' to quit):")
			}
			if err := in.Err(); err != nil {
				return &vortex.IOError{Op: "read", Err: err}
			}
			fmt.Fprintln(out, "Goodbye!")
			return nil
		},
	}
}
