// Package server exposes the benchmark's Prometheus metrics and a health
// check over HTTP while a run is in progress.
package server
