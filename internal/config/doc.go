// Package config parses the matbench command line and applies MATBENCH_*
// environment overrides. Priority is CLI flags, then environment, then
// defaults.
package config
