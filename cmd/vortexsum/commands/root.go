package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	vortex "github.com/Giulio2002/vortexhash"
)

// NewRootCmd builds the vortexsum command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:   "vortexsum [FILE...]",
		Short: "Print Vortex-256 digests of files or stdin",
		Long: `Print a Vortex-256 digest for each FILE, or for stdin when no FILE is
given or FILE is -. With --key-hex the HMAC-Vortex-256 of each input is
printed instead.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(cmd, o, args)
		},
	}
	rootCmd.PersistentFlags().AddFlagSet(o.flags())

	rootCmd.AddCommand(
		newProfileCmd(o),
		newCheckCmd(o),
		newInteractiveCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func runSum(cmd *cobra.Command, o *options, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	key, keyed, err := o.key(cmd)
	if err != nil {
		return err
	}
	d := o.dispatcher()

	out := cmd.OutOrStdout()
	for _, name := range args {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		digest, err := hashInput(cmd, d, name, key, keyed, o.bufferSize.bytes())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(out, "%s  %s\n", digest, name)
	}
	return nil
}

// hashInput hashes the file at name, or stdin for "-".
func hashInput(cmd *cobra.Command, d *vortex.Dispatcher, name string, key []byte, keyed bool, bufferSize int) (vortex.Digest, error) {
	var r io.Reader
	if name == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return vortex.Digest{}, err
		}
		defer f.Close()
		r = f
	}

	if !keyed {
		return d.SumReader(r, bufferSize)
	}
	mac := d.NewMAC(key)
	defer mac.Destroy()
	if _, err := io.CopyBuffer(mac, r, make([]byte, max(bufferSize, vortex.BlockSize))); err != nil {
		return vortex.Digest{}, &vortex.IOError{Op: "read", Err: err}
	}
	return mac.Finalize()
}
