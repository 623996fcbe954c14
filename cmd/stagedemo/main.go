// Stagedemo runs a small platform scene: a bouncing player collides with a
// tile map floor, the camera follows it, and colored boxes can be dragged
// with the mouse. No external assets are required.
//
// Profiling:
//
//	go run ./cmd/stagedemo -profile cpu
//	go tool pprof -http=":8000" cpu.pprof
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/stage"
	"github.com/pkg/profile"
	"github.com/tanema/gween/ease"
)

const (
	screenW  = 640
	screenH  = 480
	cellSize = 32
	boxSize  = 48
	gravity  = 900
)

func main() {
	configPath := flag.String("config", "", "JSON run config")
	scriptPath := flag.String("script", "", "JSON input script to play back")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	if err := run(*configPath, *scriptPath, *profileMode); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so a started profile is always stopped and
// flushed.
func run(configPath, scriptPath, profileMode string) error {
	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown -profile mode %q", profileMode)
	}

	cfg := stage.DefaultRunConfig()
	cfg.Title = "stage demo"
	cfg.Width, cfg.Height = screenW, screenH
	cfg.ShowFPS = true
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if cfg, err = stage.LoadConfig(data); err != nil {
			return err
		}
	}

	engine := stage.NewEngine(cfg)
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := stage.LoadScript(data)
		if err != nil {
			return err
		}
		engine.SetScript(script)
	}

	scene := buildScene()
	engine.SetScene(scene)
	follow(scene)

	return engine.Run()
}

func buildScene() *stage.Scene {
	scene := stage.NewScene()

	floor := stage.NewTileMap(0, screenH-2*cellSize, cellSize, cellSize, 2, 60)
	for col := 0; col < floor.Cols; col++ {
		for row := 0; row < floor.Rows; row++ {
			floor.SetSolid(col, row, true)
			floor.Cell(col, row).Graphics = []stage.Graphic{
				stage.NewRect(cellSize-1, cellSize-1, stage.Color{R: 0.25, G: 0.22, B: 0.3, A: 1}),
			}
		}
	}
	scene.AddTileMap(floor)

	player := stage.NewColoredActor("player", 100, 100, 32, 32, stage.Color{R: 0.9, G: 0.8, B: 0.2, A: 1})
	player.Collider().Type = stage.CollisionActive
	player.Body.Acc = stage.Vec2{Y: gravity}
	player.Body.Vel = stage.Vec2{X: 120}
	player.On(stage.EventPostCollision, func(e stage.Event) {
		if e.Side == stage.SideBottom {
			player.Body.Vel.Y = -500
		}
	})
	player.SetZ(10)
	scene.Add(player)

	colors := []stage.Color{
		{R: 0.9, G: 0.3, B: 0.3, A: 1},
		{R: 0.3, G: 0.7, B: 0.9, A: 1},
		{R: 0.3, G: 0.9, B: 0.5, A: 1},
	}
	for i, c := range colors {
		box := makeBox(fmt.Sprintf("box%d", i), float64(160+i*160), 200, c)
		scene.Add(box)
	}
	return scene
}

// makeBox creates a draggable box that pulses when clicked.
func makeBox(name string, x, y float64, c stage.Color) *stage.Actor {
	box := stage.NewColoredActor(name, x, y, boxSize, boxSize, c)
	box.Collider().Type = stage.CollisionPreventCollision
	box.EnablePointerCapture(stage.CaptureConfigFor(stage.EventDragMove))

	var grab stage.Vec2
	box.On(stage.EventPointerDown, func(e stage.Event) {
		grab = box.Pos().Sub(e.WorldPos)
		box.Actions.Clear()
		box.Actions.
			ScaleTo(1.2, 1.2, 0.1, ease.OutQuad).
			ScaleTo(1, 1, 0.2, ease.OutBounce)
	})
	box.On(stage.EventDragMove, func(e stage.Event) {
		p := e.WorldPos.Add(grab)
		box.SetPos(p.X, p.Y)
	})
	box.On(stage.EventDragEnd, func(stage.Event) {
		box.Actions.FadeTo(0.4, 0.15, ease.Linear).FadeTo(1, 0.15, ease.Linear)
	})
	return box
}

func follow(scene *stage.Scene) {
	for _, a := range scene.Actors() {
		if a.Name == "player" {
			scene.Camera.Follow(a, stage.Vec2{}, 0.1)
			scene.Camera.SetBounds(stage.BoxFromSize(0, -screenH, 60*cellSize, 2*screenH))
			return
		}
	}
}
