package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// envFlags maps the variables that may be set in a .env file to the flags
// they provide defaults for.
var envFlags = map[string]string{
	"SDRAMSIM_SEED":         "seed",
	"SDRAMSIM_TRACE_DB":     "trace-db",
	"SDRAMSIM_MONITOR_PORT": "monitor-port",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sdramsim",
	Short: "sdramsim simulates an SDRAM controller serving burst bus traffic.",
	Long: `sdramsim simulates an SDRAM controller serving burst bus traffic. ` +
		`It checks every word read back against a shadow memory and every ` +
		`device command against the device timing rules.`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnvDefaults,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// applyEnvDefaults loads .env and uses its values for the flags that are not
// given on the command line.
func applyEnvDefaults(cmd *cobra.Command, _ []string) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	for env, name := range envFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}

		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}

		err := cmd.Flags().Set(name, value)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}

	return nil
}
