package main

import (
	"os"

	"github.com/xfsops/prjquota/cmd/prjquota-exporter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
