package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wagnerlima/glyco-studio/config"
	"github.com/wagnerlima/glyco-studio/internal/httpapi"
	"github.com/wagnerlima/glyco-studio/internal/server"
	"github.com/wagnerlima/glyco-studio/internal/storage"
)

// serveCmd runs the MCP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the design tools over MCP (stdio or streamable HTTP)",
	Long: `Serve the design tools over MCP.

With --transport stdio (the default) the server speaks MCP on stdin/stdout.
With --transport http it listens on --port and serves:

  /mcp                                        streamable MCP endpoint
  /health                                     liveness check
  /.well-known/oauth-protected-resource       resource metadata
  /campaigns/{campaign}/designs/{id}/viewer   3D viewer for recorded structures

When auth.bearer-token (or MCP_BEARER_TOKEN) is set, /mcp and the viewer
require it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("transport", "stdio", "transport mode: stdio or http")
	serveCmd.Flags().String("port", "8081", "HTTP port (only used with --transport http)")

	viper.BindPFlag("transport", serveCmd.Flags().Lookup("transport"))
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func serve(ctx context.Context, c config.Config) error {
	meta, err := storage.OpenMeta(c.DataDir)
	if err != nil {
		return err
	}
	defer meta.Close()

	st, err := newStudio()
	if err != nil {
		return err
	}
	srv := server.New(meta, st)

	switch c.Transport {
	case "stdio":
		slog.Info("glyco-studio MCP server starting", "transport", "stdio", "data_dir", c.DataDir)
		err := srv.Run(ctx, &mcp.StdioTransport{})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		api := httpapi.NewServer(httpapi.Config{
			BearerToken:   c.Auth.BearerToken,
			ResourceURL:   c.Auth.ResourceURL,
			AuthServerURL: c.Auth.ServerURL,
			RateLimit:     c.Rate.Limit,
			RateBurst:     c.Rate.Burst,
		}, meta, handler)

		httpServer := &http.Server{
			Addr:        ":" + c.Port,
			Handler:     api.Handler(),
			ReadTimeout: 10 * time.Second,
			IdleTimeout: 120 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		slog.Info("glyco-studio MCP server listening",
			"addr", httpServer.Addr,
			"data_dir", c.DataDir,
			"auth", c.Auth.BearerToken != "",
			"rate_limit", c.Rate.Limit,
		)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
