package main

import (
	"os"

	"github.com/consol-monitoring/checkcore/pkg/checkcore"
	"github.com/consol-monitoring/checkcore/pkg/checkcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(int(checkcore.CheckExitUnknown))
	}
}
