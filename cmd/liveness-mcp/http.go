package main

import (
	"context"
	"net"
	"time"

	"liveness/internal/platform/logger"
	phttp "liveness/internal/platform/net/http"
	pstr "liveness/internal/platform/strings"
	"liveness/internal/services/api"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	httpAddr    string
	httpBaseURL string
)

// drainTimeout bounds graceful shutdown of open MCP streams and requests
const drainTimeout = 10 * time.Second

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve MCP over streamable HTTP and SSE plus the debug routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		a, cfg, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()

		srv := phttp.NewServer(cfg).WithAddr(httpAddr)
		base := pstr.Or(httpBaseURL, cfg.MayString("HTTP_BASE_URL", baseURL(srv.Addr())))
		drain := a.Mount(srv.Router(), api.HTTPOptions{
			Origins:        cfg.MayCSV("HTTP_CORS_ORIGINS", []string{"*"}),
			AuthToken:      cfg.MayString("HTTP_AUTH_TOKEN", ""),
			BaseURL:        base,
			EnableProfiler: cfg.MayBool("HTTP_PPROF", false),
		})

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.Run(gctx) })
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
			defer cancel()
			if err := drain(sctx); err != nil {
				logger.Named("http").Warn().Err(err).Msg("mcp transports did not drain")
			}
			return srv.Shutdown(sctx)
		})
		return g.Wait()
	},
}

// baseURL is the url the SSE endpoint event advertises for a listen address
func baseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().StringVar(&httpAddr, "addr", "", "Listen address, overrides HTTP_ADDR and PORT")
	httpCmd.Flags().StringVar(&httpBaseURL, "base-url", "", "Public base url for the SSE transport, overrides HTTP_BASE_URL")
}
