package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/samqfs/samqfsui/internal/popup"
	"github.com/samqfs/samqfsui/internal/protocol"
	"github.com/samqfs/samqfsui/internal/server/httpx"
)

func presetsHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, protocol.PresetsResponse{Presets: popup.Presets()})
}

func (s *consoleServer) popupJSHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write([]byte(s.popupJS))
}

func (s *consoleServer) popupPlanHandler(w http.ResponseWriter, r *http.Request) {
	var req protocol.LaunchRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target := strings.TrimSpace(req.TargetPath)
	if target != "" && !s.cfg.Popup.AllowsPopupPath(target) {
		slog.Warn("popup target rejected", "target", target, "window", req.WindowName)
		s.metrics.popupPlans.WithLabelValues("none", "forbidden").Inc()
		http.Error(w, "popup target path is not allowed", http.StatusForbidden)
		return
	}

	serverCtx := strings.TrimSpace(req.ServerContext)
	if serverCtx == "" {
		serverCtx = s.cfg.Console.DefaultServer
	}
	screen := req.Screen
	if screen.AvailWidth <= 0 || screen.AvailHeight <= 0 {
		screen = s.cfg.Popup.Screen
	}

	preset := popup.ParsePreset(req.Preset)
	plan, err := popup.Plan(s.cfg.Console.AppRoot, popup.Request{
		TargetPath:    target,
		WindowName:    strings.TrimSpace(req.WindowName),
		ServerContext: serverCtx,
		Preset:        preset,
		ExtraParams:   req.ExtraParams,
	}, screen)
	if err != nil {
		s.metrics.popupPlans.WithLabelValues(preset.String(), "invalid").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, popup.ErrMissingTarget) || errors.Is(err, popup.ErrMissingWindowName) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	s.metrics.popupPlans.WithLabelValues(plan.Preset, "planned").Inc()
	slog.Info("popup plan built", "target", target, "window", plan.WindowName, "preset", plan.Preset, "server", serverCtx)
	httpx.WriteJSON(w, http.StatusOK, protocol.LaunchResponse{Plan: plan})
}
