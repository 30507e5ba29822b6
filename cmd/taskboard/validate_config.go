package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/taskboard/internal/config"
)

func newValidateConfigCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Check .taskboard/config.yaml without starting the UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(dir)
			if err != nil {
				return err
			}
			cfg, err := config.NewConfig(projectDir)
			if err != nil {
				return err
			}
			params := cfg.ViewParams()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "OK: %s\n", cfg.ProjectConfigPath())
			fmt.Fprintf(out, "- locale: %s\n", cfg.Locale())
			fmt.Fprintf(out, "- new task priority: %s\n", cfg.DefaultPriority())
			fmt.Fprintf(out, "- filter: %s\n", params.Filter)
			fmt.Fprintf(out, "- order: %s\n", params.Order)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "project directory holding .taskboard/ (defaults to cwd)")
	return cmd
}
