package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/config"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/render"
	"github.com/milk9111/wayfarer/ecs/system"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
	"github.com/milk9111/wayfarer/save"
	"github.com/milk9111/wayfarer/scene"
	"github.com/milk9111/wayfarer/state"
	"github.com/milk9111/wayfarer/ui"
)

const tuningPrefab = "game.yaml"

// GameOptions selects where a session starts.
type GameOptions struct {
	Config config.Config
	Store  *save.Store
	// Resume, when set, starts at the saved scene and restores the player's
	// health and coins on arrival.
	Resume *save.Progress
}

type Game struct {
	log *log.Logger
	cfg config.Config

	world    *ecs.World
	clock    *clock.Clock
	cooldown *clock.Cooldown

	loader    *scene.Loader
	spawner   *scene.Spawner
	sequencer *scene.Sequencer
	scheduler *ecs.Scheduler

	physics *system.PhysicsSystem
	camera  *system.CameraFollowSystem
	ai      *system.AISystem
	chests  *system.ChestSystem

	manager  *state.Manager
	visible  *state.UIManager
	panels   *ui.Panels
	renderer *render.Renderer

	store   *save.Store
	resume  *save.Progress
	watcher *prefabs.Watcher
	quit    bool
}

func NewGame(logger *log.Logger, opts GameOptions) (*Game, error) {
	cfg := opts.Config
	prefabs.DiskDir = cfg.PrefabDir

	tuning, err := prefabs.LoadSpec[prefabs.GameSpec](tuningPrefab)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	catalog, err := scene.LoadCatalog(levels.LevelsFS)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		log:      logger,
		cfg:      cfg,
		world:    ecs.NewWorld(),
		clock:    clock.New(),
		renderer: render.NewRenderer(),
		store:    opts.Store,
		resume:   opts.Resume,
	}
	g.renderer.Debug = cfg.Debug
	g.cooldown = clock.NewCooldown(g.clock)

	g.physics = system.NewPhysicsSystem(g.clock)
	g.loader = scene.NewLoader(logger.WithPrefix("loader"), levels.LevelsFS, catalog, g.physics.Reset)
	g.spawner = scene.NewSpawner(logger.WithPrefix("spawner"), g.cooldown, scene.SpawnerConfig{
		PlacementThreshold: tuning.Spawner.PlacementThreshold,
		CooldownSeconds:    tuning.Spawner.CooldownSeconds,
	})
	g.sequencer = scene.NewSequencer(logger.WithPrefix("sequencer"), g.clock, g.loader, g.spawner, scene.SequencerConfig{
		FadeSeconds:      tuning.Transition.FadeSeconds,
		DelaySeconds:     tuning.Transition.DelaySeconds,
		ProgressiveBatch: tuning.Transition.ProgressiveBatch,
	})

	g.manager = state.NewManager(logger.WithPrefix("state"), g.clock, g.sequencer, g.spawner, g.loader)
	g.visible = state.NewUIManager(g.manager)
	g.panels = ui.NewPanels(cfg.WindowWidth, cfg.WindowHeight, ui.Actions{
		Resume:  g.manager.TogglePause,
		Quit:    func() { g.quit = true },
		Restart: g.restart,
	})

	g.camera = system.NewCameraFollowSystem(logger.WithPrefix("camera"), g.clock, system.CameraConfig{
		RetryInterval:  tuning.Camera.RetryInterval,
		MaxAttempts:    tuning.Camera.MaxAttempts,
		RepairInterval: tuning.Camera.RepairInterval,
	})
	g.camera.SetViewport(float64(cfg.WindowWidth), float64(cfg.WindowHeight))
	g.ai = system.NewAISystem(logger.WithPrefix("ai"), g.clock)

	var ledger system.ChestLedger
	if g.store != nil {
		ledger = g.store
	}
	g.chests = system.NewChestSystem(logger.WithPrefix("chest"), ledger)

	portalCooldown := tuning.Portal.GlobalCooldownSeconds
	if portalCooldown <= 0 {
		portalCooldown = system.DefaultGlobalPortalCooldown
	}

	g.scheduler = ecs.NewScheduler(
		ecs.SystemFunc(g.manager.Update),
		system.NewPlayerControllerSystem(logger.WithPrefix("player"), g.clock),
		g.ai,
		system.NewBossSystem(logger.WithPrefix("boss")),
		system.NewKnockbackSystem(g.clock),
		g.physics,
		system.NewPortalSystem(logger.WithPrefix("portal"), g.clock, g.cooldown, portalCooldown, g.sequencer, g.spawner),
		system.NewCombatSystem(logger.WithPrefix("combat")),
		system.NewDeathSystem(logger.WithPrefix("death")),
		system.NewPickupCollectSystem(),
		g.chests,
		system.NewHealthSystem(g.clock),
		system.NewTTLSystem(g.clock),
		g.camera,
	)

	g.spawner.OnPlaced(func(w *ecs.World, player ecs.Entity) {
		g.camera.Bind(w, player)
		g.restoreProgress(w, player)
	})
	g.sequencer.OnSceneLoaded(func(w *ecs.World, id scene.SceneID) {
		if _, ok := scene.FindPlayer(w); !ok {
			g.spawner.ArriveAtDefault(w, g.loader.Registry())
		}
		g.camera.HandleSceneLoaded(w, id)
		g.chests.HandleSceneLoaded(w)
	})
	g.sequencer.OnTransitionComplete(g.saveProgress)
	g.manager.OnStateChange(func(prev, next state.State) {
		g.log.Info("state changed", "from", prev, "to", next)
	})

	if cfg.Debug {
		watcher, err := prefabs.NewWatcher(cfg.PrefabDir, filepath.Join(cfg.PrefabDir, "scripts"))
		if err != nil {
			g.log.Warn("prefab hot reload disabled", "dir", cfg.PrefabDir, "err", err)
		} else {
			g.watcher = watcher
		}
	}

	start, destination, err := g.startPoint(catalog)
	if err != nil {
		return nil, err
	}
	if destination != "" {
		g.spawner.SetPendingDestination(destination)
	}
	if err := g.sequencer.RequestLoad(start, nil, component.LoadSync); err != nil {
		return nil, fmt.Errorf("game: load %s: %w", start, err)
	}
	g.log.Info("starting", "scene", start, "destination", destination)
	return g, nil
}

// startPoint picks the first scene: a resumed save, then the configured
// override, then the catalog start.
func (g *Game) startPoint(catalog *scene.Catalog) (scene.SceneID, string, error) {
	name, destination := string(catalog.Start()), catalog.StartDestination()
	if g.resume != nil {
		name, destination = g.resume.Scene, g.resume.Destination
	} else if g.cfg.Scene != "" {
		name, destination = g.cfg.Scene, g.cfg.Destination
	}
	id, err := catalog.Parse(name)
	if err != nil {
		return "", "", fmt.Errorf("game: start scene: %w", err)
	}
	return id, destination, nil
}

func (g *Game) restoreProgress(w *ecs.World, player ecs.Entity) {
	p := g.resume
	if p == nil {
		return
	}
	g.resume = nil
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && p.MaxHealth > 0 {
		h.Max = p.MaxHealth
		h.Current = min(max(p.Health, 1), p.MaxHealth)
	}
	if wallet, ok := ecs.Get(w, player, component.WalletComponent.Kind()); ok {
		wallet.Coins = p.Coins
	}
	g.log.Info("progress restored", "scene", p.Scene, "health", p.Health, "coins", p.Coins)
}

func (g *Game) saveProgress(id scene.SceneID) {
	if g.store == nil {
		return
	}
	hud := ui.ReadHUD(g.world)
	err := g.store.SaveProgress(save.Progress{
		Scene:       string(id),
		Destination: g.spawner.LastDestination(),
		Health:      hud.Health,
		MaxHealth:   hud.MaxHealth,
		Coins:       hud.Coins,
	})
	if err != nil {
		g.log.Error("save progress failed", "scene", id, "err", err)
	}
}

func (g *Game) restart() {
	if err := g.manager.Restart(g.world); err != nil {
		if !errors.Is(err, state.ErrNotGameOver) {
			g.log.Error("restart failed", "err", err)
		}
	}
}

// reloadPrefabs applies edits picked up by the watcher. Specs are reread on
// their next use; scripts are recompiled for every running enemy.
func (g *Game) reloadPrefabs() {
	select {
	case err := <-g.watcher.Errors():
		g.log.Warn("prefab watcher", "err", err)
	default:
	}
	scripts := false
	for _, c := range g.watcher.Drain() {
		g.log.Info("prefab changed", "path", c.Path, "kind", c.Kind)
		scripts = scripts || c.Kind == prefabs.ChangeScript
	}
	if scripts {
		g.ai.InvalidateScripts()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.clock.Tick(clock.TickSeconds)

	if g.watcher != nil {
		g.reloadPrefabs()
	}

	k := readKeys()
	switch {
	case k.pause:
		g.manager.TogglePause()
	case k.restart && g.manager.State() == state.GameOver:
		g.restart()
	}
	applyInput(g.world, k, g.manager.State() == state.Playing && !g.sequencer.InProgress())

	g.scheduler.Update(g.world)
	g.sequencer.Update(g.world)

	g.panels.SetHUD(ui.ReadHUD(g.world))
	for _, p := range g.openPanels() {
		p.Update()
	}
	return nil
}

func (g *Game) openPanels() []*ebitenui.UI {
	var open []*ebitenui.UI
	if g.visible.Visible(state.PanelHUD) {
		open = append(open, g.panels.HUD)
	}
	if g.visible.Visible(state.PanelPause) {
		open = append(open, g.panels.Pause)
	}
	if g.visible.Visible(state.PanelGameOver) {
		open = append(open, g.panels.GameOver)
	}
	return open
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	render.DrawFade(screen, g.sequencer.Alpha())
	for _, p := range g.openPanels() {
		p.Draw(screen)
	}

	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  scene: %s  transition: %s %.0f%%  state: %s  portal cooldown: %.1fs",
			ebiten.ActualFPS(), g.loader.Current(), g.sequencer.Phase(), g.sequencer.Progress()*100, g.manager.State(), g.cooldown.Remaining()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.WindowWidth), float64(g.cfg.WindowHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
