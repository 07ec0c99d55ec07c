// Package tray provides the system tray Exit control for the watch feed on
// Windows, where the feed usually runs headless in the background.
package tray

import (
	"log"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// Tray manages the system tray icon and menu
type Tray struct {
	shutdownFunc ShutdownFunc
	addr         string
	once         sync.Once
	shuttingDown atomic.Bool
	menuExit     *systray.MenuItem
}

// New creates a new Tray instance. addr is shown in the tooltip so the
// monitoring side knows where the feed listens.
func New(addr string, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		shutdownFunc: shutdownFn,
		addr:         addr,
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// onReady is called when the tray is ready
func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("joydiag watch")
	systray.SetTooltip("joydiag watch feed - " + t.addr)

	t.menuExit = systray.AddMenuItem("Exit", "Stop the watch feed")

	go t.handleMenuClicks()

	log.Println("System tray initialized")
}

// handleMenuClicks processes menu item clicks without blocking
func (t *Tray) handleMenuClicks() {
	for range t.menuExit.ClickedCh {
		if t.shuttingDown.CompareAndSwap(false, true) {
			t.once.Do(t.shutdownFunc)
			systray.Quit()
			return
		}
	}
}

// onExit is called when the tray is exiting
func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	log.Println("System tray exiting")
}
