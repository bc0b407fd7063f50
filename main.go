package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tickreg/ecs/system"
	"github.com/milk9111/tickreg/prefabs"
	"github.com/pkg/profile"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run holds the program body so deferred cleanup, including the CPU profile,
// happens before main exits on error.
func run() error {
	configName := flag.String("config", "engine.yaml", "engine config in prefabs/ (embedded copy used when missing on disk)")
	prefabDir := flag.String("prefabs", prefabs.DiskDir, "directory checked for prefab and script overrides")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Uint64("frames", 0, "stop after this many frames (headless default 600)")
	watch := flag.Bool("watch", false, "reload prefabs and scripts when they change on disk")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile into this directory")
	flag.Parse()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.NoShutdownHook).Stop()
	}

	prefabs.DiskDir = *prefabDir

	spec, err := prefabs.LoadEngineSpec(*configName)
	if err != nil {
		return err
	}

	game, err := NewGame(spec)
	if err != nil {
		return err
	}
	defer game.Close()

	if *watch {
		if err := game.Watch(*prefabDir, *prefabDir+"/scripts"); err != nil {
			log.Printf("watch %s: %v", *prefabDir, err)
		}
	}

	if *headless {
		n := *frames
		if n == 0 {
			n = 600
		}
		for i := uint64(0); i < n; i++ {
			game.Step()
		}
		log.Printf("done: frame=%d entities=%d", game.World().Frame(), game.World().Registry().Len())
		return nil
	}

	if err := game.World().AddPrimaryInputAdapter(system.NewKeyboardInput()); err != nil {
		return err
	}
	if err := game.World().InitInputs(); err != nil {
		return err
	}

	game.SetMaxFrames(*frames)
	ebiten.SetTPS(spec.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	title := spec.Name
	if title == "" {
		title = "tickreg"
	}
	ebiten.SetWindowTitle(title)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
