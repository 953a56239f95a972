package gui

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/world"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// ContactSink is told about every touching pair with its closing speed.
type ContactSink interface {
	Collide(speed float64)
}

type App struct {
	Cfg        *config.Config
	Seed       int64
	World      *world.World
	Running    bool
	ShowHUD    bool
	Telemetry  []float64 // kinetic energy ring buffer
	MaxHistory int
	Sink       ContactSink
}

// initWindow opens a window the size of the arena.
func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Arena.Width), int32(cfg.Arena.Height), "collide")
	rl.SetTargetFPS(int32(cfg.Run.FPS))
	rl.SetExitKey(rl.KeyQ)
}

func NewApp(cfg *config.Config, seed int64, sink ContactSink) (*App, error) {
	app := &App{
		Cfg:        cfg,
		Seed:       seed,
		Running:    true,
		ShowHUD:    true,
		MaxHistory: 300,
		Telemetry:  make([]float64, 0, 300),
		Sink:       sink,
	}
	if err := app.reset(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, seed int64, sink ContactSink) error {
	app, err := NewApp(cfg, seed, sink)
	if err != nil {
		return err
	}

	initWindow(cfg)
	defer rl.CloseWindow()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) reset() error {
	w, err := world.New(a.Cfg, rand.New(rand.NewSource(a.Seed)))
	if err != nil {
		return err
	}
	a.World = w
	a.Telemetry = a.Telemetry[:0]
	a.wireContacts()
	return nil
}

func (a *App) wireContacts() {
	if a.Sink == nil {
		return
	}
	sink := a.Sink
	a.World.Detector.OnContact = func(x, y *physics.Body) {
		sink.Collide(y.Velocity.Sub(x.Velocity).Len())
	}
}

// Update handles input and advances the world by the last frame's duration.
// Holding F switches gravity and drag on; a switched-on body stays on.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Seed++
		if err := a.reset(); err != nil {
			a.Running = false
		}
	}
	if !a.Running {
		return
	}

	a.World.StepFrame(float64(rl.GetFrameTime()), rl.IsKeyDown(rl.KeyF))

	a.Telemetry = append(a.Telemetry, a.World.KineticEnergy())
	if len(a.Telemetry) > a.MaxHistory {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawBodies()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	drawText("collide", 20, 20, 20, ColSelect)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	drawText(status, int32(a.Cfg.Arena.Width)-100, 20, 16, col)

	drawText(fmt.Sprintf("t %.2fs  frame %d  bodies %d  seed %d",
		a.World.Time(), a.World.Frame(), len(a.World.Bodies), a.Seed), 20, 48, 14, ColText)

	a.DrawTelemetry()

	h := int32(a.Cfg.Arena.Height)
	drawText("[F] GRAVITY  [SPACE] PAUSE  [R] RESET  [TAB] HUD  [Q] QUIT", 20, h-28, 12, ColTextDim)
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.Cfg.Arena.Width)-70, h-28, 12, ColTextDim)
}

func drawText(text string, x, y, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}
