//go:build !windows

package ansi

// EnableANSI does nothing outside Windows.
func EnableANSI() {
}
