package core

import (
	"errors"
)

var (
	ErrPlatformInit            = errors.New("platform runtime initialization failed")
	ErrWindowClassRegistration = errors.New("unable to register a window class")
	ErrWindowCreation          = errors.New("unable to create the window")
	ErrNoGraphics              = errors.New("no graphics subsystem configured")
	ErrNoApplication           = errors.New("no application provided")
	ErrAlreadyRunning          = errors.New("engine is already running")
	ErrNoMonitor               = errors.New("no monitor to cover")
)
