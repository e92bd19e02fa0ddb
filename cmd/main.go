package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "vulnadvisor",
		Short:        "LLM-powered vulnerability report advisor",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file (default: $VULNADVISOR_CONFIG)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newAnalyzeCmd(&configPath))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
