package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/promptmix/pkg/config"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:   "promptmix",
		Short: "Fill [tag] templates with unique combinations of tabular values",
		Long: `promptmix detects [tag] placeholders in a template, collects the candidate
values for each tag from the matching column of a CSV, TSV or YAML data source,
and renders combinations that were never produced before in the session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "load environment variables from these .env files")

	root.AddCommand(newServeCmd(), newGenerateCmd())
	return root
}
