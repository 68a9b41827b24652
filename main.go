// main is the entry point for the confcast CLI.
package main

import (
	"github.com/huangsam/confcast/cmd"
	"github.com/huangsam/confcast/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run confcast", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Cannot stop profiling", err)
	}
}
