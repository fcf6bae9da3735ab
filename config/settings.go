// Package config loads the application settings file. Missing file means
// defaults; a present but unparsable file is an error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Settings struct {
	World  WorldSettings  `json:"world"`
	Window WindowSettings `json:"window"`
	Data   DataSettings   `json:"data"`
	Server ServerSettings `json:"server"`
}

type WorldSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type WindowSettings struct {
	PixelScale int    `json:"pixelScale"`
	Title      string `json:"title"`
	VSync      bool   `json:"vsync"`
}

type DataSettings struct {
	MaterialsPath string `json:"materialsPath"`
}

type ServerSettings struct {
	Enabled          bool `json:"enabled"`
	Port             int  `json:"port"`
	UpdateIntervalMs int  `json:"updateIntervalMs"`
}

// Default returns the settings used when no file overrides them.
func Default() Settings {
	return Settings{
		World:  WorldSettings{Width: 512, Height: 384},
		Window: WindowSettings{PixelScale: 2, Title: "sandsim", VSync: true},
		Data:   DataSettings{MaterialsPath: "data/materials.json"},
		Server: ServerSettings{Enabled: false, Port: 8080, UpdateIntervalMs: 250},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	s := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("open settings %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}
