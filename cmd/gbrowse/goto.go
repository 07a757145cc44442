package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/utils"
)

// createGotoCommand создает команду goto с привязкой к экземпляру приложения
func (app *Application) createGotoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "goto [region]",
		Short: "Set the region shown on the next start",
		Long:  `Set the view region of the session, e.g. chr7:27,000,000-27,300,000 or chrX.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.gotoRegion(args[0])
		},
	}
}

func (app *Application) gotoRegion(s string) error {
	assembly, err := app.Session.Assembly()
	if err != nil {
		return err
	}
	region, err := genome.Parse(s, assembly)
	if err != nil {
		return err
	}
	region = assembly.Clamp(region)

	app.Session.SetRegion(region)
	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	fmt.Printf("📍 Регион: %s (%s)\n", region, utils.FormatBases(region.Width()))
	return nil
}
