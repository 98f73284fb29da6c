package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/internal/httpd"
	"github.com/tradebook/tradebook/tradebook"
)

func RunServe(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	conf := httpd.DefaultConfig()
	var journal, origins string
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
	fs.StringVar(&conf.Addr, "addr", conf.Addr, "listen address")
	fs.StringVar(&origins, "origins", "*", "comma-separated CORS origins")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if journal == "" {
		fmt.Fprintln(os.Stderr, "missing --journal")
		return 2
	}
	conf.AllowedOrigins = strings.Split(origins, ",")

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()
	if g.Verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			log = dev
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapter, err := newAdapter(g, journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	opts := tradebook.DefaultOptions()
	opts.Logger = log
	j, err := tradebook.Open(ctx, adapter, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()

	srv := httpd.New(j, log, conf)
	if err := srv.Run(ctx); err != nil && err != http.ErrServerClosed {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
