package engine

import (
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
)

// Game adapts a set of functions to the Application and LifecycleHandler
// interfaces. Nil functions are skipped.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}

	FnStartup     Startup
	FnCleanup     Cleanup
	FnUpdate      Update
	FnRenderScene RenderScene
	FnRenderUI    RenderUI

	FnOnSuspend    func()
	FnOnResume     func()
	FnOnActivate   func()
	FnOnDeactivate func()
	FnOnResize     OnResize
	FnOnDestroy    func()
}

type Startup func() error
type Cleanup func() error
type Update func(deltaTime float64) error
type RenderScene func() error
type RenderUI func(ui metadata.UIContext) error
type OnResize func(width uint32, height uint32)

func (g *Game) Startup() error {
	if g.FnStartup == nil {
		return nil
	}
	return g.FnStartup()
}

func (g *Game) Cleanup() error {
	if g.FnCleanup == nil {
		return nil
	}
	return g.FnCleanup()
}

func (g *Game) Update(deltaTime float64) error {
	if g.FnUpdate == nil {
		return nil
	}
	return g.FnUpdate(deltaTime)
}

func (g *Game) RenderScene() error {
	if g.FnRenderScene == nil {
		return nil
	}
	return g.FnRenderScene()
}

func (g *Game) RenderUI(ui metadata.UIContext) error {
	if g.FnRenderUI == nil {
		return nil
	}
	return g.FnRenderUI(ui)
}

func (g *Game) OnSuspend() {
	if g.FnOnSuspend != nil {
		g.FnOnSuspend()
	}
}

func (g *Game) OnResume() {
	if g.FnOnResume != nil {
		g.FnOnResume()
	}
}

func (g *Game) OnActivate() {
	if g.FnOnActivate != nil {
		g.FnOnActivate()
	}
}

func (g *Game) OnDeactivate() {
	if g.FnOnDeactivate != nil {
		g.FnOnDeactivate()
	}
}

func (g *Game) OnResize(width uint32, height uint32) {
	if g.FnOnResize != nil {
		g.FnOnResize(width, height)
	}
}

func (g *Game) OnDestroy() {
	if g.FnOnDestroy != nil {
		g.FnOnDestroy()
	}
}
