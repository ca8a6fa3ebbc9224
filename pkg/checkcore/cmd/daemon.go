package cmd

import (
	"fmt"
	"os"

	"github.com/consol-monitoring/checkcore/pkg/checkcore"

	"github.com/spf13/cobra"
)

func init() {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run configured checks periodically and export prometheus metrics",
		Long: `daemon runs all checks listed in the [/settings/daemon]
config section on the configured interval and exposes the results
as prometheus metrics.

Example config:

    [/settings/daemon]
    port = 8443
    interval = 30s
    check_net = check_netrate levels=100MB,200MB
`,
		Run: func(_ *cobra.Command, _ []string) {
			core, err := checkcore.NewCore(coreFlags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				os.Exit(int(checkcore.CheckExitUnknown))
			}

			if err := checkcore.RunDaemon(core); err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				os.Exit(int(checkcore.CheckExitUnknown))
			}
		},
	}
	rootCmd.AddCommand(daemonCmd)
}
