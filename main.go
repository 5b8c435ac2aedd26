package main

import (
	"os"

	"github.com/loadstone/loadout/cmd"
	"github.com/loadstone/loadout/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
