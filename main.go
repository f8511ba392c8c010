/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"

	"github.com/pkg/profile"
	"github.com/spaghettifunk/gamecore/engine"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform/desktop"
	"github.com/spaghettifunk/gamecore/engine/renderer"
	"github.com/spaghettifunk/gamecore/engine/tuning"
	"github.com/spaghettifunk/gamecore/testbed"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "engine.toml", "path to the engine configuration")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile into this directory")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogError("%s", err)
		return engine.ExitInitFailure
	}
	level, _ := config.Level()
	core.SetLogLevel(level)

	if *cpuProfile != "" {
		config.CPUProfile = true
		config.ProfilePath = *cpuProfile
	}

	if config.CPUProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(config.ProfilePath), profile.NoShutdownHook).Stop()
	}

	p := desktop.New(desktop.Options{ResizeSettle: config.ResizeSettle.Duration})
	if err := p.Initialize(); err != nil {
		core.LogError("%s", err)
		return engine.ExitInitFailure
	}
	defer p.Terminate()

	r := renderer.New(renderer.Options{
		VSync:       config.VSync,
		RefreshRate: int(config.RefreshRate),
		OverlayFont: config.OverlayFont,
	})
	input := core.NewInput(nil)
	registry := tuning.NewRegistry(config.TuningFile, tuning.WithKeys(input))
	metrics := core.NewMetrics()

	e, err := engine.New(config, p, engine.Subsystems{
		Graphics:    r,
		Profiler:    metrics,
		Input:       input,
		Tuning:      registry,
		PostEffects: renderer.NewPostEffects(r, registry),
	})
	if err != nil {
		core.LogError("%s", err)
		return engine.ExitInitFailure
	}

	tb := testbed.NewTestGame(config, r, input, metrics, registry)
	code, err := e.Run(tb, config.Name)
	if err != nil {
		core.LogError("%s", err)
	}
	return code
}
