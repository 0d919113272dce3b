package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/samqfs/samqfsui/internal/protocol"
	"github.com/samqfs/samqfsui/internal/server/httpx"
	"github.com/samqfs/samqfsui/internal/version"
)

func (s *consoleServer) serverInfoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	host, _ := os.Hostname()
	host = strings.TrimSpace(host)
	httpx.WriteJSON(w, http.StatusOK, protocol.ServerInfo{
		Name:       "samqfsui",
		APIVersion: version.APIVersion,
		Version:    version.Current(),
		Hostname:   host,
		AppRoot:    s.cfg.Console.AppRoot,
	})
}
