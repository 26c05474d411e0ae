package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runFlags = defaultRunOptions()

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run random traffic through the controller and report statistics.",
	Long: "`run` writes random bursts, reads each of them back and compares " +
		"the data. It fails if any word differs or the device sees a timing " +
		"violation.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSimulation(runFlags, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		runErr := s.run()
		closeErr := s.close()

		if runErr != nil {
			return runErr
		}

		if closeErr != nil {
			return closeErr
		}

		s.report(cmd.OutOrStdout())

		if runFlags.traceDB != "" {
			fmt.Fprintf(os.Stderr, "Trace written to %s.sqlite3\n",
				runFlags.traceDB)
		}

		return s.check()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.Int64Var(&runFlags.seed, "seed", runFlags.seed,
		"Seed of the random traffic.")
	f.IntVar(&runFlags.numAccess, "num-access", runFlags.numAccess,
		"Number of write bursts, each read back once.")
	f.Uint32Var(&runFlags.maxAddress, "max-address", runFlags.maxAddress,
		"Traffic stays below this byte address.")
	f.Float64Var(&runFlags.freqMHz, "freq-mhz", runFlags.freqMHz,
		"Clock frequency in MHz.")
	f.IntVar(&runFlags.casLatency, "cas-latency", runFlags.casLatency,
		"CAS latency in cycles.")
	f.StringVar(&runFlags.traceDB, "trace-db", runFlags.traceDB,
		"Record transactions and device commands into this SQLite file, "+
			"without the .sqlite3 extension.")
	f.BoolVar(&runFlags.logCommands, "log-commands", runFlags.logCommands,
		"Print every device command to stderr.")
	f.BoolVar(&runFlags.monitor, "monitor", runFlags.monitor,
		"Serve the web monitor while simulating.")
	f.IntVar(&runFlags.monitorPort, "monitor-port", runFlags.monitorPort,
		"Port of the web monitor. 0 picks a free port.")
	f.BoolVar(&runFlags.openBrowser, "open-browser", runFlags.openBrowser,
		"Open the web monitor in a browser.")
}
