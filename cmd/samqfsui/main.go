package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samqfs/samqfsui/internal/config"
	"github.com/samqfs/samqfsui/internal/protocol"
	"github.com/samqfs/samqfsui/internal/server"
	"github.com/samqfs/samqfsui/internal/statuspoll"
	"github.com/samqfs/samqfsui/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	initLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "server":
		err = runServer(ctx, os.Args[2:])
	case "status":
		err = runStatus(ctx, os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "samqfsui: %v\n", err)
		os.Exit(1)
	}
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SAMQFSUI_LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig(path string) (config.File, error) {
	if strings.TrimSpace(path) == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runServer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("SAMQFSUI_CONFIG"), "path to samqfsui.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg)
}

type statusOptions struct {
	serverURL   string
	operationID string
	interval    time.Duration
	once        bool
}

func parseStatusArgs(args []string) (statusOptions, error) {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var opts statusOptions
	configPath := fs.String("config", os.Getenv("SAMQFSUI_CONFIG"), "path to samqfsui.yaml")
	fs.StringVar(&opts.serverURL, "url", "http://127.0.0.1"+config.DefaultListenAddr, "console server base URL")
	fs.StringVar(&opts.operationID, "operation", "", "operation id to watch")
	fs.DurationVar(&opts.interval, "interval", 0, "poll interval (defaults to status.poll_interval)")
	fs.BoolVar(&opts.once, "once", false, "print one summary and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.operationID) == "" {
		return opts, errors.New("status requires -operation")
	}
	if opts.interval <= 0 {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return opts, err
		}
		opts.interval = cfg.Status.PollInterval
	}
	opts.serverURL = strings.TrimRight(opts.serverURL, "/")
	return opts, nil
}

func runStatus(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseStatusArgs(args)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 30 * time.Second}

	info, err := fetchServerInfo(ctx, client, opts.serverURL)
	if err != nil {
		return err
	}
	if info.APIVersion != version.APIVersion || !version.Compatible(version.Current(), info.Version) {
		return fmt.Errorf("server %s (api %d) is not compatible with client %s (api %d)",
			info.Version, info.APIVersion, version.Current(), version.APIVersion)
	}

	fetcher := &statuspoll.HTTPFetcher{
		Client: client,
		URL:    opts.serverURL + "/api/v1/operations/" + url.PathEscape(opts.operationID) + "/status",
	}
	if opts.once {
		sum, err := fetcher.Fetch(ctx)
		if err != nil {
			return err
		}
		printSummary(out, sum)
		return nil
	}

	p := &statuspoll.Poller{
		Fetcher:  fetcher,
		Display:  statuspoll.DisplayFunc(func(sum protocol.HostStatusSummary) { printSummary(out, sum) }),
		StopWhen: protocol.HostStatusSummary.Done,
	}
	if err := p.Start(ctx, opts.interval); err != nil {
		return err
	}
	p.Wait()

	if sum, ok := p.Latest(); ok && sum.Done() && sum.Failed > 0 {
		return fmt.Errorf("operation %s: %d of %d hosts failed", opts.operationID, sum.Failed, sum.Total)
	}
	return nil
}

func fetchServerInfo(ctx context.Context, client *http.Client, baseURL string) (protocol.ServerInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/server-info", nil)
	if err != nil {
		return protocol.ServerInfo{}, fmt.Errorf("create server-info request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return protocol.ServerInfo{}, fmt.Errorf("send server-info request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return protocol.ServerInfo{}, fmt.Errorf("server-info rejected: status=%d", resp.StatusCode)
	}
	var info protocol.ServerInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return protocol.ServerInfo{}, fmt.Errorf("decode server-info: %w", err)
	}
	return info, nil
}

func printSummary(out io.Writer, sum protocol.HostStatusSummary) {
	fmt.Fprintf(out, "operation %s: total=%d succeeded=%d failed=%d pending=%d\n",
		sum.OperationID, sum.Total, sum.Succeeded, sum.Failed, sum.Pending)
	for _, h := range sum.Hosts {
		if h.Error != "" {
			fmt.Fprintf(out, "  %-20s %-10s %s\n", h.Name, h.Status, h.Error)
			continue
		}
		fmt.Fprintf(out, "  %-20s %s\n", h.Name, h.Status)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `samqfsui - SAM-QFS console server

Usage:
  samqfsui <command> [flags]

Commands:
  server      Run the console API server (-config path)
  status      Watch a multi-host operation (-url, -operation, -interval, -once)
  help        Show this help
`)
}
