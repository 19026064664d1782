package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Giulio2002/vortexhash/internal/capability"
)

func newProfileCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the detected CPU capability profile and the tier in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := o.dispatcher()
			p := d.Profile()
			out := cmd.OutOrStdout()

			if p.Brand != "" {
				fmt.Fprintf(out, "cpu:        %s\n", p.Brand)
			}
			fmt.Fprintf(out, "requested:  %s\n", p.Chosen)
			fmt.Fprintf(out, "running:    %s (kernel %s)\n", d.Tier(), d.Kernel())
			if p.Overridden {
				fmt.Fprintf(out, "override:   %s=%s\n", capability.EnvOverride, p.Chosen)
			}
			for _, name := range p.Unprobed {
				fmt.Fprintf(out, "unprobed:   %s\n", name)
			}

			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIER\tNAME\tAVAILABLE\tMB/s")
			for t := range capability.NumTiers {
				tier := capability.Tier(t)
				fmt.Fprintf(tw, "T%d\t%s\t%t\t%.0f\n", t, tier, p.Available[t], tier.Throughput())
			}
			return tw.Flush()
		},
	}
}
