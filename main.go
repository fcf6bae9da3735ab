package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"sandsim/config"
)

func main() {
	runtime.LockOSThread()

	var (
		settingsPath = flag.String("settings", "settings.json", "Path to the settings file")
		width        = flag.Int("width", 0, "World width in cells (overrides settings)")
		height       = flag.Int("height", 0, "World height in cells (overrides settings)")
		scale        = flag.Int("scale", 0, "Window pixels per cell (overrides settings)")
		materials    = flag.String("materials", "", "Path to the material table (overrides settings)")
		statsPort    = flag.Int("stats", 0, "Enable the websocket stats server on this port")
	)
	flag.Parse()

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	if *width > 0 {
		cfg.World.Width = *width
	}
	if *height > 0 {
		cfg.World.Height = *height
	}
	if *scale > 0 {
		cfg.Window.PixelScale = *scale
	}
	if *materials != "" {
		cfg.Data.MaterialsPath = *materials
	}
	if *statsPort > 0 {
		cfg.Server.Enabled = true
		cfg.Server.Port = *statsPort
	}

	fmt.Printf("world: %dx%d cells, scale %d\n", cfg.World.Width, cfg.World.Height, cfg.Window.PixelScale)
	fmt.Printf("materials: %s\n", cfg.Data.MaterialsPath)

	app := NewApp(cfg)
	if err := app.Run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
