//go:build windows

// Package console sets up reliable Ctrl+C handling on Windows. Go's
// os.Interrupt delivery can be unreliable once SDL3 is running with
// runtime.LockOSThread(), so the watch mode registers a native console
// control handler as well.
package console

import (
	"log"
	"sync/atomic"
	"syscall"
)

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	ctrlCEvent     = 0
	ctrlBreakEvent = 1
)

type handlerState struct {
	closed       int32 // atomic: 0 = not closed, 1 = closed
	shutdownChan chan struct{}
	callbackFn   uintptr
}

// Kept global so the Windows callback can reach it.
var globalHandlerState *handlerState

// SetupCtrlHandler registers a console control handler that closes
// shutdownChan on Ctrl+C or Ctrl+Break. It returns a re-register function to
// call after library initialization, because SDL3 replaces console handlers
// during its own init.
func SetupCtrlHandler(shutdownChan chan struct{}) func() {
	globalHandlerState = &handlerState{
		shutdownChan: shutdownChan,
	}

	// BOOL WINAPI HandlerRoutine(DWORD dwCtrlType)
	globalHandlerState.callbackFn = syscall.NewCallback(func(ctrlType uint32) uintptr {
		if ctrlType == ctrlCEvent || ctrlType == ctrlBreakEvent {
			if atomic.CompareAndSwapInt32(&globalHandlerState.closed, 0, 1) {
				close(globalHandlerState.shutdownChan)
			}
			return 1 // handled
		}
		return 0 // pass to the next handler
	})

	registerHandler := func() {
		if globalHandlerState == nil {
			return
		}
		ret, _, _ := procSetConsoleCtrlHandler.Call(globalHandlerState.callbackFn, 1)
		if ret == 0 {
			log.Printf("Warning: failed to set console control handler")
		}
	}

	registerHandler()
	return registerHandler
}
