package main

import (
	"os"

	"github.com/xfsops/prjquota/cmd/prjquota/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
