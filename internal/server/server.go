// Package server hosts the console API: popup launch plans, field
// validation, multi-host operation status, and the popup JS helper.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/samqfs/samqfsui/internal/config"
	"github.com/samqfs/samqfsui/internal/server/grpcapi"
	"github.com/samqfs/samqfsui/internal/store"
)

type consoleServer struct {
	cfg     config.File
	db      *store.Store
	metrics *consoleMetrics
	popupJS string
}

func newConsoleServer(cfg config.File, db *store.Store) *consoleServer {
	return &consoleServer{
		cfg:     cfg,
		db:      db,
		metrics: newConsoleMetrics(),
		popupJS: renderPopupJS(cfg.Console.AppRoot, cfg.Console.DefaultServer),
	}
}

func Run(ctx context.Context, cfg config.File) error {
	cfg = applyEnvOverrides(cfg)
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid server config: %s", strings.Join(errs, "; "))
	}

	db, err := store.Open(cfg.Console.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	s := newConsoleServer(cfg, db)
	router := buildRouter(s)

	httpSrv := &http.Server{
		Addr:              cfg.Console.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var grpcSrv *grpc.Server
	var grpcLis net.Listener
	if addr := strings.TrimSpace(cfg.Console.GRPCAddr); addr != "" {
		grpcLis, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
		grpcSrv = grpc.NewServer()
		grpcapi.RegisterConsoleServer(grpcSrv, newConsoleGRPCServer(router))
	}

	stopMDNS := startMDNSAdvertiser(cfg)
	defer stopMDNS()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("samqfsui server started", "addr", cfg.Console.ListenAddr, "app_root", cfg.Console.AppRoot)
		err := httpSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	if grpcSrv != nil {
		g.Go(func() error {
			slog.Info("samqfsui grpc started", "addr", grpcLis.Addr().String())
			if err := grpcSrv.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("serve grpc: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if grpcSrv != nil {
			grpcSrv.GracefulStop()
		}
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	})

	err = g.Wait()
	slog.Info("samqfsui server stopped")
	return err
}

// applyEnvOverrides lets deployments tweak a config file without editing it.
func applyEnvOverrides(cfg config.File) config.File {
	cfg.Console.ListenAddr = envOrDefault("SAMQFSUI_SERVER_ADDR", cfg.Console.ListenAddr)
	cfg.Console.GRPCAddr = envOrDefault("SAMQFSUI_GRPC_ADDR", cfg.Console.GRPCAddr)
	cfg.Console.DBPath = envOrDefault("SAMQFSUI_DB", cfg.Console.DBPath)
	cfg.Console.AppRoot = envOrDefault("SAMQFSUI_APP_ROOT", cfg.Console.AppRoot)
	cfg.Console.DefaultServer = envOrDefault("SAMQFSUI_DEFAULT_SERVER", cfg.Console.DefaultServer)
	cfg.MDNS.Instance = envOrDefault("SAMQFSUI_MDNS_INSTANCE", cfg.MDNS.Instance)
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SAMQFSUI_MDNS_ENABLE"))) {
	case "false", "0", "no":
		cfg.MDNS.Enabled = false
	case "true", "1", "yes":
		cfg.MDNS.Enabled = true
	}
	return cfg
}
