//go:build !windows

// Package console sets up reliable Ctrl+C handling on Windows. On other
// platforms Go's standard os.Interrupt signal handling is sufficient, so this
// is a no-op.
package console

// SetupCtrlHandler returns a no-op re-register function on non-Windows
// platforms.
func SetupCtrlHandler(shutdownChan chan struct{}) func() {
	return func() {}
}
