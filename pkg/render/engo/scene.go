// Package engo hosts the arena in an engo window.
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/engine"
	"github.com/opd-ai/go-arena/pkg/logging"
	"github.com/opd-ai/go-arena/pkg/physics"
	"github.com/opd-ai/go-arena/pkg/render"
)

// maxFrameTime caps a single simulation step after a stall
const maxFrameTime = 0.1

var backgroundColor = color.RGBA{18, 18, 26, 255}

// GameScene represents the main game scene in Engo
type GameScene struct {
	config  *config.GameConfig
	logger  *logging.Logger
	shake   render.Offsetter
	options []engine.Option

	// Rendering components
	assets   *AssetManager
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem

	game *engine.Game
}

// NewGameScene creates a scene that builds its game on Setup. shake feeds
// the camera and may be nil; opts are passed to the game alongside the
// scene's renderer and input.
func NewGameScene(cfg *config.GameConfig, logger *logging.Logger, shake render.Offsetter, opts ...engine.Option) *GameScene {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		config:  cfg,
		logger:  logger,
		shake:   shake,
		options: opts,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo). Every
// texture is generated, so there are no files to load.
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)

	SetupInputBindings()
	common.SetBackground(backgroundColor)
	scene.setCameraBounds()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.assets = NewAssetManager()
	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Error(context.Background(), "Failed to load assets", err)
		panic("Failed to initialize renderer: " + err.Error())
	}
	scene.renderer = NewEngoRenderer(renderSystem, scene.assets)

	scene.camera = NewCameraSystem(scene.arena(), scene.shake)
	scene.input = NewInputSystem(scene.camera)

	opts := append([]engine.Option{}, scene.options...)
	opts = append(opts, engine.WithRenderer(scene.renderer), engine.WithInput(scene.input))
	scene.game = engine.NewGame(scene.config, scene.logger, opts...)

	scene.hud = NewHUDSystem(scene.game.GetGameState)
	scene.hud.Attach(renderSystem, scene.assets.GetFont())

	world.AddSystem(scene.input)
	world.AddSystem(&gameSystem{game: scene.game, input: scene.input})
	world.AddSystem(scene.camera)
	world.AddSystem(scene.hud)

	scene.game.Start()
}

func (scene *GameScene) arena() physics.Rect {
	return physics.NewArena(scene.config.Arena.Width, scene.config.Arena.Height)
}

// setCameraBounds leaves room around the arena for the shake offset
func (scene *GameScene) setCameraBounds() {
	cam := scene.config.Camera
	margin := float32(2 * max(cam.ShakeIntensity, cam.PlayerShakeIntensity))
	common.CameraBounds = engo.AABB{
		Min: engo.Point{X: -margin, Y: -margin},
		Max: engo.Point{
			X: float32(scene.config.Arena.Width) + margin,
			Y: float32(scene.config.Arena.Height) + margin,
		},
	}
}

// Game returns the game built by Setup, nil before it
func (scene *GameScene) Game() *engine.Game {
	return scene.game
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	if scene.game == nil {
		return
	}
	state := scene.game.GetGameState()
	ctx := logging.WithSessionID(context.Background(), scene.game.SessionID())
	scene.logger.Info(ctx, "Window closed", "score", state.Score, "wave", state.Wave)
}

// gameSystem steps the simulation once per engo frame
type gameSystem struct {
	game  *engine.Game
	input *InputSystem
}

func (gs *gameSystem) Remove(basic ecs.BasicEntity) {}

// Priority runs the game after input and before the camera and HUD
func (gs *gameSystem) Priority() int { return 5 }

func (gs *gameSystem) Update(dt float32) {
	if gs.input.QuitRequested() {
		engo.Exit()
		return
	}
	gs.game.Update(min(float64(dt), maxFrameTime))
}

// Run opens a window sized to the arena and blocks until it is closed
func Run(scene *GameScene) {
	engo.Run(engo.RunOptions{
		Title:          "Arena",
		Width:          int(scene.config.Arena.Width),
		Height:         int(scene.config.Arena.Height),
		StandardInputs: false,
		NotResizable:   true,
		MSAA:           4,
	}, scene)
}
