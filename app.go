package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"sandsim/config"
	"sandsim/registry"
	"sandsim/rendering/opengl"
	"sandsim/server"
)

// dtClamp bounds how much frame time a single loop iteration may feed the
// accumulator, so a stall (window drag, debugger pause) cannot trigger a
// runaway tick catch-up.
const dtClamp = 0.1

// App owns the window, input state and the wiring between registry, world
// and the optional stats server.
type App struct {
	cfg    config.Settings
	window *glfw.Window

	reg   *registry.Registry
	world *opengl.World
	brush *Brush

	stats *server.Stats

	selected     int
	brushSize    int
	brushShape   BrushShape
	lastLeftDown bool

	lastFrame float64
	fps       float64
}

// NewApp prepares an App; Run does all the actual work.
func NewApp(cfg config.Settings) *App {
	return &App{
		cfg:       cfg,
		reg:       registry.New(),
		stats:     &server.Stats{},
		selected:  1,
		brushSize: 4,
	}
}

// Run initializes window, GL and all sandbox components, then drives the
// frame loop until the window closes.
func (a *App) Run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	winW := a.cfg.World.Width * a.cfg.Window.PixelScale
	winH := a.cfg.World.Height * a.cfg.Window.PixelScale
	window, err := glfw.CreateWindow(winW, winH, a.cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	a.window = window
	window.MakeContextCurrent()
	if a.cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init opengl: %w", err)
	}
	fmt.Println("OpenGL version:", gl.GoStr(gl.GetString(gl.VERSION)))

	// Material table: load, one-shot upload, persistent binding.
	if err := a.reg.Load(a.cfg.Data.MaterialsPath); err != nil {
		return err
	}
	a.reg.Upload()
	a.reg.Bind(registry.MaterialBinding)
	defer a.reg.Destroy()
	fmt.Printf("loaded %d materials\n", a.reg.Count())

	a.world = opengl.NewWorld(a.cfg.World.Width, a.cfg.World.Height)
	if err := a.world.Init(a.reg); err != nil {
		return err
	}
	defer a.world.Destroy()

	a.brush, err = NewBrush(a.reg.ShaderHeader())
	if err != nil {
		return err
	}
	defer a.brush.Destroy()

	if a.cfg.Server.Enabled {
		srv := server.New(a.stats, time.Duration(a.cfg.Server.UpdateIntervalMs)*time.Millisecond)
		go func() {
			if err := srv.ListenAndServe(a.cfg.Server.Port); err != nil {
				log.Printf("stats server stopped: %v", err)
			}
		}()
	}

	window.SetKeyCallback(a.onKey)

	a.lastFrame = glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := now - a.lastFrame
		a.lastFrame = now
		if dt > dtClamp {
			dt = dtClamp
		}
		if dt > 0 {
			a.fps = a.fps*0.95 + (1.0/dt)*0.05
		}

		a.handlePainting()
		a.world.Update(dt)

		fbW, fbH := window.GetFramebufferSize()
		gl.ClearColor(0.1, 0.1, 0.1, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.world.Render(0, 0, int32(fbW), int32(fbH))

		a.stats.Publish(server.Snapshot{
			Frame:      a.world.FrameCount(),
			SimTime:    a.world.Elapsed(),
			FPS:        a.fps,
			SelectedID: a.selected,
			Materials:  a.reg.Names(),
		})

		window.SwapBuffers()
	}
	return nil
}

func (a *App) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch {
	case key == glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case key == glfw.KeyC:
		a.world.Clear()
	case key == glfw.KeyB:
		a.brushShape = (a.brushShape + 1) % brushShapeCount
		fmt.Println("brush shape:", a.brushShape)
	case key == glfw.KeyLeftBracket:
		if a.brushSize > 1 {
			a.brushSize--
		}
	case key == glfw.KeyRightBracket:
		if a.brushSize < 15 {
			a.brushSize++
		}
	case key >= glfw.Key0 && key <= glfw.Key9:
		id := int(key - glfw.Key0)
		if id < a.reg.Count() {
			a.selected = id
			name := a.reg.Name(id)
			if id == registry.EmptyID {
				name = "eraser"
			}
			fmt.Printf("selected %d (%s)\n", id, name)
		}
	}
}

// screenToWorld maps a cursor position to grid coordinates. Screen Y grows
// downward, world Y upward.
func (a *App) screenToWorld(mx, my float64) (int, int, bool) {
	scale := float64(a.cfg.Window.PixelScale)
	x := int(mx / scale)
	y := a.cfg.World.Height - 1 - int(my/scale)
	if x < 0 || x >= a.cfg.World.Width || y < 0 || y >= a.cfg.World.Height {
		return 0, 0, false
	}
	return x, y, true
}

func (a *App) handlePainting() {
	left := a.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	right := a.window.GetMouseButton(glfw.MouseButtonRight) == glfw.Press
	defer func() { a.lastLeftDown = left }()

	if !left && !right {
		return
	}

	// Single-click materials (spawners and the like) fire once per press
	// edge; everything else paints continuously. The eraser is always
	// continuous.
	singleClick := a.reg.SingleClick(a.selected)
	draw := right
	if left {
		if singleClick {
			draw = draw || !a.lastLeftDown
		} else {
			draw = true
		}
	}
	if !draw {
		return
	}

	mx, my := a.window.GetCursorPos()
	x, y, ok := a.screenToWorld(mx, my)
	if !ok {
		return
	}

	erasing := right || a.selected == registry.EmptyID
	size := a.brushSize
	shape := a.brushShape
	if singleClick && !erasing {
		// One discrete cell, regardless of brush settings.
		a.world.SpawnParticle(x, y, uint8(a.selected))
		return
	}
	a.brush.Paint(a.world, x, y, size, shape, uint8(a.selected), erasing)
}
