package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-gbrowse/internal/config"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	var configPath, sessionPath string

	rootCmd := &cobra.Command{
		Use:   "gbrowse",
		Short: "A terminal genome browser",
		Long:  `A terminal genome browser: view BED, bedGraph and 3D genome tracks, manage the track session.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.load(configPath, sessionPath)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the config file")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "path to the session file (overrides session_file from config)")
	rootCmd.PersistentFlags().BoolVar(&app.debug, "debug", false, "write TUI log to debug.log")

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createViewCommand())
	rootCmd.AddCommand(app.createTracksCommand())
	rootCmd.AddCommand(app.createAddCommand(ctx))
	rootCmd.AddCommand(app.createRemoveCommand(ctx))
	rootCmd.AddCommand(app.createMoveCommand())
	rootCmd.AddCommand(app.createGotoCommand())
	rootCmd.AddCommand(app.createTypesCommand())

	return rootCmd
}
