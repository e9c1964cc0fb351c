//go:build !linux

package platform

// Notify is a no-op without a freedesktop session bus.
func Notify(title, body string, opts Options) error {
	return nil
}
