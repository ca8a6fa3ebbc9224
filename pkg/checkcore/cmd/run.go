package cmd

import (
	"fmt"
	"os"

	"github.com/consol-monitoring/checkcore/pkg/checkcore"

	"github.com/spf13/cobra"
)

func init() {
	runCmd := &cobra.Command{
		Use:   "run <check> [args]",
		Short: "Run a check and print its plugin output",
		Long: `run executes a single check and prints the result in
standard monitoring plugin format, the exit code is the check state.

Example:

    checkcore run check_table table=sensors.tsv column=temperature levels=60,70 unit=°C
`,
		Args: cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			core, err := checkcore.NewCore(coreFlags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				os.Exit(int(checkcore.CheckExitUnknown))
			}

			res := core.RunCheck(args[0], args[1:])
			fmt.Println(res.BuildPluginOutput())
			os.Exit(int(res.State))
		},
	}
	rootCmd.AddCommand(runCmd)
}
