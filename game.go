package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
	"github.com/milk9111/tickreg/ecs/entity"
	"github.com/milk9111/tickreg/ecs/system"
	"github.com/milk9111/tickreg/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 640
	baseHeight = 360

	statusSeconds = 5
)

// Game drives one World, either through ebiten or headless via Step.
type Game struct {
	spec    *prefabs.EngineSpec
	world   *ecs.World
	builder *entity.Builder
	factory *entity.Factory
	scripts []*system.ScriptSystem
	watcher *prefabs.Watcher

	maxFrames uint64
}

func NewGame(spec *prefabs.EngineSpec) (*Game, error) {
	if spec == nil {
		return nil, errors.New("game: nil engine spec")
	}

	var opts []ecs.Option
	if spec.MaxEntityID > 0 {
		opts = append(opts, ecs.WithMaxID(spec.MaxEntityID))
	}
	if spec.FirstEntityID != nil {
		opts = append(opts, ecs.WithFirstID(*spec.FirstEntityID))
	}

	world := ecs.NewWorld(opts...)
	builder := entity.NewBuilder(world.Registry(), prefabs.NewCache())
	factory := entity.NewFactory()

	g := &Game{
		spec:    spec,
		world:   world,
		builder: builder,
		factory: factory,
	}

	names := make([]string, 0, len(spec.Spawn))
	for _, s := range spec.Spawn {
		names = append(names, s.Prefab)
	}
	if err := entity.RegisterPrefabs(factory, builder, names...); err != nil {
		return nil, err
	}

	if err := g.addSystems(); err != nil {
		return nil, err
	}

	for _, s := range spec.Spawn {
		for i := 0; i < s.Count; i++ {
			if _, err := factory.Spawn(s.Prefab); err != nil {
				return nil, fmt.Errorf("game: spawn %s #%d: %w", s.Prefab, i, err)
			}
		}
	}

	if err := g.scheduleStatus(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) addSystems() error {
	if g.spec.Script != "" {
		script, err := system.NewScriptSystem(g.spec.Script, g.factory)
		if err != nil {
			return err
		}
		g.scripts = append(g.scripts, script)
		if err := g.world.AddSystem(script); err != nil {
			return err
		}
	}

	ttl := system.NewTTLSystem()
	ttlLog, err := system.NewLifecycleLogSystem("ttl", ttl)
	if err != nil {
		return err
	}
	cooldown := system.NewCooldownSystem()
	cooldownLog, err := system.NewLifecycleLogSystem("cooldown", cooldown)
	if err != nil {
		return err
	}

	for _, s := range []ecs.System{
		system.NewInputSystem(),
		system.NewMovementSystem(),
		system.NewPhysicsSystem(g.spec.Gravity),
		ttl,
		ttlLog,
		cooldown,
		cooldownLog,
	} {
		if err := g.world.AddSystem(s); err != nil {
			return err
		}
	}
	return nil
}

// scheduleStatus logs world stats every few seconds of frames. Each status
// timer removes itself and schedules the next one when it runs out.
func (g *Game) scheduleStatus() error {
	t, err := ecs.NewTimer(ecs.TimerConfig{
		Duration: g.spec.TPS * statusSeconds,
		OnLast: func(t *ecs.Timer) {
			log.Printf("game: frame=%d entities=%d timers=%d max_id=%s", g.world.Frame(), g.world.Registry().Len(), g.world.Timers().Len(), g.world.Registry().MaxID())
			g.world.Timers().RemoveTimer(t)
			if err := g.scheduleStatus(); err != nil {
				log.Printf("game: schedule status: %v", err)
			}
		},
	})
	if err != nil {
		return err
	}
	if _, err := g.world.Timers().Register(t); err != nil {
		return err
	}
	t.Start()
	return nil
}

// Watch starts reloading prefabs and scripts from dirs when they change on disk.
func (g *Game) Watch(dirs ...string) error {
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) World() *ecs.World {
	return g.world
}

// SetMaxFrames makes Update return ebiten.Termination after n frames. Zero
// means run until the window closes.
func (g *Game) SetMaxFrames(n uint64) {
	g.maxFrames = n
}

// Step applies pending file changes and advances the world by one frame.
func (g *Game) Step() {
	if g.watcher != nil {
		g.applyChanges(g.watcher.Poll())
	}
	g.world.Update()
}

// applyChanges runs on the update goroutine, which is the only one touching
// the prefab cache and the compiled scripts.
func (g *Game) applyChanges(changes []prefabs.Change) {
	for _, c := range changes {
		if !c.Script {
			g.builder.Cache().Invalidate(c.Name)
			log.Printf("game: prefab %s changed", c.Name)
			continue
		}
		for _, s := range g.scripts {
			if path.Base(s.Path()) != path.Base(c.Name) {
				continue
			}
			if err := s.Reload(); err != nil {
				log.Printf("game: reload %s: %v", c.Name, err)
				continue
			}
			log.Printf("game: script %s reloaded", c.Name)
		}
	}
}

func (g *Game) Update() error {
	if g.maxFrames > 0 && g.world.Frame() >= g.maxFrames {
		return ebiten.Termination
	}
	g.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	r := g.world.Registry()
	ecs.ForEach(r, component.TransformComponent, func(e ecs.EntityID, t *component.Transform) {
		var clr color.Color = colornames.Lightgrey
		switch {
		case ecs.Has(r, e, component.EnemyTagComponent):
			clr = colornames.Crimson
		case ecs.Has(r, e, component.ProjectileTagComponent):
			clr = colornames.Gold
		case ecs.Has(r, e, component.InputComponent):
			clr = colornames.Deepskyblue
		}
		vector.DrawFilledRect(screen, float32(t.X-4), float32(t.Y-4), 8, 8, clr, false)
	})

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frame: %d    Entities: %d    FPS: %.2f", g.world.Frame(), r.Len(), ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
