package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sdramaxi/datarecording"
	"github.com/sarchlab/sdramaxi/mem/sdram"
	"github.com/sarchlab/sdramaxi/tracing"
)

var inspectFlags struct {
	bursts  bool
	command string
	limit   int
	offset  int
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.sqlite3>",
	Short: "List the device commands recorded with run --trace-db.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return err
		}

		reader := datarecording.NewReader(args[0])
		defer reader.Close()

		if inspectFlags.bursts {
			return listBursts(cmd, reader)
		}

		reader.MapTable(sdram.CommandTableName, sdram.CommandEntry{})

		params := datarecording.QueryParams{
			OrderBy: "Cycle",
			Limit:   inspectFlags.limit,
			Offset:  inspectFlags.offset,
		}

		if inspectFlags.command != "" {
			params.Where = "Command = ?"
			params.Args = []any{inspectFlags.command}
		}

		results, total, err := reader.Query(cmd.Context(),
			sdram.CommandTableName, params)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, r := range results {
			e := r.(*sdram.CommandEntry)
			fmt.Fprintf(w, "%10d  %-10s bank=%d addr=0x%04x dq=0x%04x dqm=%02b\n",
				e.Cycle, e.Command, e.Bank, e.Addr, e.DQ, e.DQM)
		}

		fmt.Fprintf(w, "%d of %d commands\n", len(results), total)

		return nil
	},
}

func listBursts(cmd *cobra.Command, reader datarecording.DataReader) error {
	reader.MapTable(tracing.TaskTableName, tracing.TaskEntry{})

	params := datarecording.QueryParams{
		OrderBy: "StartCycle",
		Limit:   inspectFlags.limit,
		Offset:  inspectFlags.offset,
	}

	results, total, err := reader.Query(cmd.Context(),
		tracing.TaskTableName, params)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		e := r.(*tracing.TaskEntry)
		fmt.Fprintf(w, "%10d  %-5s latency=%d commands=%d\n",
			e.StartCycle, e.What, e.Latency, e.Steps)
	}

	fmt.Fprintf(w, "%d of %d bursts\n", len(results), total)

	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	f := inspectCmd.Flags()
	f.BoolVar(&inspectFlags.bursts, "bursts", false,
		"List the recorded bursts instead of the commands.")
	f.StringVar(&inspectFlags.command, "command", "",
		"Only list this command, such as READ or ACTIVATE.")
	f.IntVar(&inspectFlags.limit, "limit", 50, "Maximum commands to list.")
	f.IntVar(&inspectFlags.offset, "offset", 0, "Commands to skip.")
}
