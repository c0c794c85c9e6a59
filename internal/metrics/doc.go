// Package metrics collects runtime memory snapshots, derives performance
// indicators from a benchmark report, and exports benchmark measurements as
// Prometheus collectors.
package metrics
