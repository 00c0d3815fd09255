package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/snackkiosk/internal/buildinfo"
	"github.com/dmitrijs2005/snackkiosk/internal/client/app"
	"github.com/dmitrijs2005/snackkiosk/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg, os.Stdout)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := a.Run(ctx, a.Frontend(os.Stdin, os.Stdout)); err != nil {
		log.Fatalf("%v", err)
	}

}
