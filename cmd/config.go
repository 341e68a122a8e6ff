package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				path = config.Path()
			}
			if err := config.Save(path, config.Default(), force); err != nil {
				return fmt.Errorf("config init: %w", err)
			}
			a.logger.Debug("config written", zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cfgCmd.AddCommand(initCmd)
	return cfgCmd
}
