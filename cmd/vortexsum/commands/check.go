package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	vortex "github.com/Giulio2002/vortexhash"
)

var errChecksumMismatch = errors.New("checksum verification failed")

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Verify digests listed in FILE",
		Long: `Read "<hex>  <name>" lines, as printed by vortexsum, and verify each
named file. Digests are compared in constant time. Use the same --key-hex
that produced the list to check HMACs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, o, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, o *options, list string) error {
	key, keyed, err := o.key(cmd)
	if err != nil {
		return err
	}
	f, err := os.Open(list)
	if err != nil {
		return err
	}
	defer f.Close()

	d := o.dispatcher()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var failed, malformed int
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hexDigest, name, ok := strings.Cut(line, "  ")
		if !ok {
			malformed++
			fmt.Fprintf(errOut, "%s:%d: improperly formatted line\n", list, lineNo)
			continue
		}
		want, err := vortex.ParseDigest(hexDigest)
		if err != nil {
			malformed++
			fmt.Fprintf(errOut, "%s:%d: %v\n", list, lineNo, err)
			continue
		}

		got, err := hashInput(cmd, d, name, key, keyed, o.bufferSize.bytes())
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(out, "%s: FAILED open or read: %v\n", name, err)
		case got.Equal(want):
			fmt.Fprintf(out, "%s: OK\n", name)
		default:
			failed++
			fmt.Fprintf(out, "%s: FAILED\n", name)
		}
	}
	if err := sc.Err(); err != nil {
		return &vortex.IOError{Op: "read " + list, Err: err}
	}

	if malformed > 0 {
		fmt.Fprintf(errOut, "WARNING: %d line(s) improperly formatted\n", malformed)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of the listed files did not match", errChecksumMismatch, failed)
	}
	return nil
}
