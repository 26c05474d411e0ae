package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sdramaxi/mem/sdram"
)

var timingFlags = defaultRunOptions()

var timingCmd = &cobra.Command{
	Use:   "timing",
	Short: "Print the cycle counts derived for a clock and CAS latency.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := timingFlags.config()
		if err != nil {
			return err
		}

		printTiming(cmd.OutOrStdout(), cfg)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(timingCmd)

	f := timingCmd.Flags()
	f.Float64Var(&timingFlags.freqMHz, "freq-mhz", timingFlags.freqMHz,
		"Clock frequency in MHz.")
	f.IntVar(&timingFlags.casLatency, "cas-latency", timingFlags.casLatency,
		"CAS latency in cycles.")
}

func printTiming(w io.Writer, cfg sdram.Config) {
	t := cfg.Timing()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Clock\t%.2f MHz\n", float64(cfg.Freq)/1e6)
	fmt.Fprintf(tw, "Geometry\t%d banks x %d rows x %d columns\n",
		cfg.NumBanks(), cfg.NumRows(), 1<<cfg.ColWidth)
	fmt.Fprintf(tw, "tRCD\t%d\n", t.TRCD)
	fmt.Fprintf(tw, "tRP\t%d\n", t.TRP)
	fmt.Fprintf(tw, "tRFC\t%d\n", t.TRFC)
	fmt.Fprintf(tw, "tMRD\t%d\n", t.TMRD)
	fmt.Fprintf(tw, "CAS latency\t%d\n", t.CASLatency)
	fmt.Fprintf(tw, "Read latency\t%d\n", t.ReadLatency)
	fmt.Fprintf(tw, "Refresh interval\t%d\n", t.RefreshInterval)
	fmt.Fprintf(tw, "Start delay\t%d\n", t.StartDelay)
	fmt.Fprintf(tw, "Mode register\t0x%03x\n", cfg.Mode().Encode())

	tw.Flush()
}
