package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	formbind "github.com/goliatone/go-formbind"
	"github.com/goliatone/go-formbind/components/describe"
	"github.com/goliatone/go-formbind/components/nullform"
	"github.com/goliatone/go-formbind/components/operations"
	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/pkg/httpbind"
	pkgopenapi "github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/security"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form binding endpoints",
		Long: `Serves the null form resource, the describe-request echo endpoint, the
protected permissions resource, and every operation of the configured manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			handler, routes, err := buildHandler(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("serve: listen %s: %w", a.cfg.Server.Addr, err)
			}
			a.logger.Info("listening",
				zap.String("addr", ln.Addr().String()),
				zap.Strings("routes", routes),
			)
			return serve(cmd.Context(), ln, handler, a.cfg.Server.ShutdownTimeout, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// buildHandler mounts every component under the configured base path and
// wraps the mux with request id and access logging middleware.
func buildHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, []string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := cfg.Server.BasePath
	bindOpts := []httpbind.OptionFn{
		httpbind.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		httpbind.WithProblemDetails(cfg.Server.ProblemDetails),
		httpbind.WithLogger(logger),
	}

	mux := http.NewServeMux()
	var routes []string

	nullRoutes, err := nullform.New(
		nullform.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		nullform.WithProblemDetails(cfg.Server.ProblemDetails),
		nullform.WithLogger(logger),
	).RegisterRoutes(mux, base)
	if err != nil {
		return nil, nil, err
	}
	routes = append(routes, nullRoutes...)

	describeRoute, err := describe.RegisterRoutes(mux, base)
	if err != nil {
		return nil, nil, err
	}
	routes = append(routes, describeRoute)

	if cfg.Security.Permission != "" {
		permission := security.NewPermission(cfg.Security.Permission)
		pattern := base + "/" + permission.Name
		mux.Handle(pattern, security.Authenticated(cfg.Resolver(),
			security.PermissionsHandler(permission, security.AttributePermissions, bindOpts...),
			bindOpts...,
		))
		routes = append(routes, pattern)
	}

	m, err := formbind.LoadManifest(ctx, cfg.Manifest.Path,
		pkgopenapi.WithHTTPFallback(cfg.Client.Timeout),
		pkgopenapi.WithLoaderLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("serve: load manifest: %w", err)
	}
	opRoutes, err := operations.RegisterRoutes(mux, base, m, bindOpts...)
	if err != nil {
		return nil, nil, err
	}
	routes = append(routes, opRoutes...)

	return httpbind.RequestID(httpbind.Logging(logger, mux)), routes, nil
}

// serve runs until ctx is cancelled, then drains in-flight requests for at
// most shutdownTimeout.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
