package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/web"
	"github.com/BetterCallFirewall/VulnAdvisor/internal/websocket"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI, JSON API and WebSocket feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, a, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Web.ListenAddr = addr
			}

			hub := websocket.NewHub()
			server, err := web.NewServer(cfg, a, newFetcher(cfg), hub)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				hub.Run(gctx)
				return nil
			})
			g.Go(server.Start)
			g.Go(func() error {
				<-gctx.Done()
				log.Println("🛑 Shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Stop(shutdownCtx)
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides web.listen_addr)")
	return cmd
}
