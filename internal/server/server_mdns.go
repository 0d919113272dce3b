package server

import (
	"log/slog"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/mdns"

	"github.com/samqfs/samqfsui/internal/config"
	"github.com/samqfs/samqfsui/internal/version"
)

const mdnsService = "_samqfsui._tcp"

// startMDNSAdvertiser announces the console on the LAN and returns a func
// that withdraws it. Failures are logged, never fatal.
func startMDNSAdvertiser(cfg config.File) func() {
	if !cfg.MDNS.Enabled {
		return func() {}
	}

	port, err := strconv.Atoi(listenPortFromAddr(cfg.Console.ListenAddr))
	if err != nil || port <= 0 {
		slog.Warn("mdns advertise skipped", "addr", cfg.Console.ListenAddr)
		return func() {}
	}

	instance := mdnsInstanceName(cfg.MDNS.Instance)
	meta := mdnsMetadata(cfg)
	service, err := mdns.NewMDNSService(instance, mdnsService, "", "", port, discoverAdvertiseIPs(), meta)
	if err != nil {
		slog.Error("mdns advertise service setup failed", "error", err)
		return func() {}
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		slog.Error("mdns advertise start failed", "error", err)
		return func() {}
	}
	slog.Info("mdns advertising enabled", "service", mdnsService, "instance", instance, "port", port)

	return func() {
		_ = server.Shutdown()
	}
}

func mdnsInstanceName(configured string) string {
	if v := strings.TrimSpace(configured); v != "" {
		return v
	}
	host, _ := os.Hostname()
	if host = strings.TrimSpace(host); host == "" {
		return "samqfsui"
	}
	return "samqfsui-" + host
}

func mdnsMetadata(cfg config.File) []string {
	meta := []string{
		"name=samqfsui",
		"api_version=" + strconv.Itoa(version.APIVersion),
		"version=" + version.Current(),
		"app_root=" + cfg.Console.AppRoot,
	}
	if cfg.Console.GRPCAddr != "" {
		meta = append(meta, "grpc_port="+listenPortFromAddr(cfg.Console.GRPCAddr))
	}
	return meta
}

func discoverAdvertiseIPs() []net.IP {
	ifAddrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	return filterAdvertiseIPs(ifAddrs)
}

// filterAdvertiseIPs keeps routable unicast addresses, IPv4 first.
func filterAdvertiseIPs(addrs []net.Addr) []net.IP {
	seen := map[string]struct{}{}
	var out []net.IP
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet == nil || !advertisable(ipNet.IP) {
			continue
		}
		ip := ipNet.IP.To16()
		if _, dup := seen[ip.String()]; dup {
			continue
		}
		seen[ip.String()] = struct{}{}
		out = append(out, ip)
	}
	sort.Slice(out, func(i, j int) bool {
		if v4i, v4j := out[i].To4() != nil, out[j].To4() != nil; v4i != v4j {
			return v4i
		}
		return out[i].String() < out[j].String()
	})
	return out
}

func advertisable(ip net.IP) bool {
	if ip == nil || ip.To16() == nil {
		return false
	}
	return !ip.IsLoopback() && !ip.IsUnspecified() && !ip.IsLinkLocalUnicast() && !ip.IsLinkLocalMulticast()
}

func listenPortFromAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	switch {
	case addr == "":
		return listenPortFromAddr(config.DefaultListenAddr)
	case strings.HasPrefix(addr, ":"):
		return strings.TrimPrefix(addr, ":")
	case !strings.Contains(addr, ":"):
		return addr
	}
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return p
}
