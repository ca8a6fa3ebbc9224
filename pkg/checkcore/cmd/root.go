package cmd

import (
	"fmt"
	"os"

	"github.com/consol-monitoring/checkcore/pkg/checkcore"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "checkcore [global flags] [command]",
	Short: "Generic metric evaluation and rate tracking core for monitoring checks.",
	Long: `checkcore reduces raw device readings to a monitoring status,
a human readable message and performance data. It keeps the durable
counter state required to turn raw counters into stable rates.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintf(os.Stderr, "checkcore called without arguments, see --help for usage.\n")
		os.Exit(int(checkcore.CheckExitUnknown))
	},
	PreRun: func(_ *cobra.Command, _ []string) {
		if coreFlags.Version {
			core, err := checkcore.NewCore(coreFlags)
			if err == nil {
				core.PrintVersion()
			}
			os.Exit(int(checkcore.CheckExitOK))
		}
	},
}

var coreFlags = &checkcore.Flags{}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&coreFlags.Version, "version", "V", false, "print version and exit")
	rootCmd.PersistentFlags().StringArrayVarP(&coreFlags.ConfigFiles, "config", "c", []string{}, "path to config file (multiple)")
	rootCmd.PersistentFlags().BoolVarP(&coreFlags.Quiet, "quiet", "q", false, "set loglevel to error")
	rootCmd.PersistentFlags().CountVarP(&coreFlags.Verbose, "verbose", "v", "increase loglevel, -v means debug, -vv means trace")
	rootCmd.PersistentFlags().StringVarP(&coreFlags.LogLevel, "loglevel", "", "", "set loglevel to one of: off, error, info, debug, trace")
	rootCmd.PersistentFlags().StringVarP(&coreFlags.LogFile, "logfile", "", "", "path to log file or stdout/stderr")
	rootCmd.PersistentFlags().StringVarP(&coreFlags.StateFile, "statefile", "s", "", "path to the counter state file")

	rootCmd.DisableAutoGenTag = true
	rootCmd.DisableSuggestions = true
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.Flags().SortFlags = false
}

// Execute runs the command line interface.
func Execute() error {
	return rootCmd.Execute()
}
