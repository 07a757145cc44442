package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// createTypesCommand создает команду types с привязкой к экземпляру приложения
func (app *Application) createTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported track types",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTypes()
		},
	}
}

func (app *Application) listTypes() {
	fmt.Printf("%-16s %-36s %s\n", "Тип", "Описание", "Параметры")
	fmt.Println(strings.Repeat("-", 80))

	for _, c := range app.registry().Types() {
		editors := make([]string, 0, len(c.Editors))
		for _, e := range c.Editors {
			editors = append(editors, e.Key)
		}
		fmt.Printf("%-16s %-36s %s\n", c.Type, c.Description, strings.Join(editors, ", "))
	}
}
