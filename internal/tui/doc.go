// Package tui implements the interactive dashboard shown with --tui. The
// sweep runs in a goroutine and reports to the bubbletea program through
// the bridge types in bridge.go; every panel is a small value-type model
// updated from the root Model.
package tui
