package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tiendalabs/supermercado/config"
	"github.com/tiendalabs/supermercado/internal/app"
	"github.com/tiendalabs/supermercado/internal/restapi"
	"github.com/tiendalabs/supermercado/internal/webserver"
)

var (
	h        bool
	x        bool
	conffile string
	port     int
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&x, "x", false, "debug mode")
	flag.StringVar(&conffile, "c", "supermercado.yml", "config file")
	flag.IntVar(&port, "p", 0, "listen port override")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(conffile)
	if x {
		cfg.System.Debug = true
	}
	if port > 0 {
		cfg.Web.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication(cfg)
	if err := application.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	ws := webserver.Init(cfg, application.Database())
	restapi.RegisterRoutes()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(ws.Listen)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server exited with error", zap.Error(err))
	}
}
