package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	// Отменяем долгие операции (загрузку в S3) по Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &Application{}
	if err := app.createRootCommand(ctx).Execute(); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
