package protocol

import "github.com/samqfs/samqfsui/internal/popup"

type LaunchRequest struct {
	TargetPath    string       `json:"target_path"`
	WindowName    string       `json:"window_name"`
	ServerContext string       `json:"server_context,omitempty"`
	Preset        string       `json:"preset,omitempty"`
	ExtraParams   []string     `json:"extra_params,omitempty"`
	Screen        popup.Screen `json:"screen"`
}

type LaunchResponse struct {
	Plan popup.LaunchPlan `json:"plan"`
}

type PresetsResponse struct {
	Presets []popup.NamedDimensions `json:"presets"`
}
