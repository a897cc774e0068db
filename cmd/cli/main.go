package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/atithi-inn/internal/client"
	"github.com/hongminglow/atithi-inn/internal/client/cli"
	"github.com/hongminglow/atithi-inn/internal/config"
	"github.com/hongminglow/atithi-inn/internal/logging"
)

// Usage:
//
//	atithi              interactive prompt
//	atithi hotels Goa   run one command and exit
func main() {
	_ = godotenv.Load()
	cfg := config.LoadClient()

	state, err := client.LoadState(cfg.StatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, os.Getenv("LOG_LEVEL")).With("app", "atithi-cli")
	api := client.New(cfg.APIBaseURL, state, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
	app := cli.NewApp(api, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		if err := app.Exec(ctx, os.Args[1], os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			stop()
			os.Exit(1)
		}
		return
	}
	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1)
	}
}
