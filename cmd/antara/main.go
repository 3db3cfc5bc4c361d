package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/antara/internal/appctx"
	"github.com/dmitrijs2005/antara/internal/buildinfo"
	"github.com/dmitrijs2005/antara/internal/cli"
	"github.com/dmitrijs2005/antara/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// The first signal cancels ctx; restore default handling so a second
	// one terminates the process even if a terminal read is still blocked.
	context.AfterFunc(ctx, stop)

	ac, err := appctx.New(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer ac.Close()

	if err := cli.NewApp(ac, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
