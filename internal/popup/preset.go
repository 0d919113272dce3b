package popup

import "strings"

type SizePreset int

const (
	Normal SizePreset = iota
	Large
	Small
	Details
	Tiny
	MonitorConsole
	VolumeAssigner
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var presetTable = []struct {
	preset SizePreset
	name   string
	dims   Dimensions
}{
	{Normal, "normal", Dimensions{Width: 700, Height: 600}},
	{Large, "large", Dimensions{Width: 900, Height: 700}},
	{Small, "small", Dimensions{Width: 700, Height: 350}},
	{Details, "details", Dimensions{Width: 500, Height: 600}},
	{Tiny, "tiny", Dimensions{Width: 600, Height: 250}},
	{MonitorConsole, "monitor_console", Dimensions{Width: 1000, Height: 500}},
	{VolumeAssigner, "volume_assigner", Dimensions{Width: 800, Height: 700}},
}

// ParsePreset maps a preset name to its value. Unknown or empty names fall
// back to Normal.
func ParsePreset(name string) SizePreset {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	for _, p := range presetTable {
		if p.name == key {
			return p.preset
		}
	}
	return Normal
}

func (p SizePreset) String() string {
	for _, row := range presetTable {
		if row.preset == p {
			return row.name
		}
	}
	return "normal"
}

func (p SizePreset) Dimensions() Dimensions {
	for _, row := range presetTable {
		if row.preset == p {
			return row.dims
		}
	}
	return presetTable[0].dims
}

// Presets lists every known preset name with its size, in declaration order.
func Presets() []NamedDimensions {
	out := make([]NamedDimensions, 0, len(presetTable))
	for _, row := range presetTable {
		out = append(out, NamedDimensions{Name: row.name, Dimensions: row.dims})
	}
	return out
}

type NamedDimensions struct {
	Name string `json:"name"`
	Dimensions
}
