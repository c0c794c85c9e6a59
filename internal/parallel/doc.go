// Package parallel holds the small synchronization helpers shared by code
// that fans work out to goroutines.
package parallel
