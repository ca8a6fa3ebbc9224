package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/consol-monitoring/checkcore/pkg/checkcore"

	"github.com/spf13/cobra"
)

func init() {
	discoverCmd := &cobra.Command{
		Use:   "discover <check> [args]",
		Short: "List the monitorable items of a check",
		Long: `discover prints one line per item a check would monitor,
along with the discovery time parameters attached to it.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			core, err := checkcore.NewCore(coreFlags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				os.Exit(int(checkcore.CheckExitUnknown))
			}

			entry, ok := checkcore.AvailableChecks[args[0]]
			if !ok {
				fmt.Fprintf(os.Stderr, "No such check: %s\n", args[0])
				os.Exit(int(checkcore.CheckExitUnknown))
			}

			discoverer, ok := entry.Handler.(checkcore.ItemDiscoverer)
			if !ok {
				fmt.Fprintf(os.Stderr, "%s does not support discovery\n", args[0])
				os.Exit(int(checkcore.CheckExitUnknown))
			}

			items, err := discoverer.Discover(core, args[1:])
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				os.Exit(int(checkcore.CheckExitUnknown))
			}

			for _, item := range items {
				line := item.ID
				params := make([]string, 0, len(item.Params))
				for key, val := range item.Params {
					params = append(params, fmt.Sprintf("%s=%s", key, val))
				}
				sort.Strings(params)
				for _, p := range params {
					line += " " + p
				}
				fmt.Println(line)
			}
		},
	}
	rootCmd.AddCommand(discoverCmd)
}
