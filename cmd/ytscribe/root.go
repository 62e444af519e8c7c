package main

import (
	"github.com/spf13/cobra"

	"github.com/patrickprogramme/ytscribe/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "ytscribe",
		Short:         "Extraction de transcripts YouTube en markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "chemin du fichier de configuration")

	rootCmd.AddCommand(newExtractCommand(&configFlag))
	rootCmd.AddCommand(newServeCommand(&configFlag))

	return rootCmd
}

// loadConfig charge la config depuis le flag, ou l'emplacement par défaut.
func loadConfig(configFlag string) (*config.Config, error) {
	return config.Load(configFlag)
}
