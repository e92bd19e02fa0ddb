package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var errAnalysisFailed = errors.New("analysis failed")

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var advisoryURL string

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Analyze one vulnerability report and print the result as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && advisoryURL == "" {
				return errors.New("provide a report file, '-' for stdin, or --url")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, a, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}

			var text, source string
			if len(args) == 1 {
				text, err = readReport(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				source = args[0]
			} else {
				text, err = newFetcher(cfg).FetchText(ctx, advisoryURL)
				if err != nil {
					return fmt.Errorf("failed to fetch advisory: %w", err)
				}
				source = advisoryURL
			}

			report := a.AnalyzeReport(ctx, text, source)

			data, err := json.MarshalIndent(report.Result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			if report.Result.IsError() {
				return errAnalysisFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&advisoryURL, "url", "", "fetch the report from an advisory page instead of a file")
	return cmd
}

func readReport(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}
