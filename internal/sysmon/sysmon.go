// Package sysmon samples the host the benchmark runs on: system-wide load
// for the live displays and a static description of processors and memory
// for the run header.
package sysmon

import (
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of system-wide resource usage. Fields are zero
// when the platform does not report them.
type Stats struct {
	CPUPercent   float64 // 0..100, delta since the previous Sample
	MemPercent   float64 // 0..100
	MemAvailable uint64  // bytes
}

// Sample collects a system-wide CPU and memory snapshot.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemAvailable = vm.Available
	}
	return s
}

// Host describes the machine's processors and memory.
type Host struct {
	Model         string
	PhysicalCores int
	LogicalCores  int
	TotalMemory   uint64
}

// DescribeHost queries the processor model, core counts and installed
// memory. Missing values are left zero.
func DescribeHost() Host {
	var h Host
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.Model = strings.TrimSpace(infos[0].ModelName)
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		h.TotalMemory = vm.Total
	}
	return h
}

// SweepFootprint returns the bytes held by one sweep over n×n int32
// matrices: both inputs, the sequential and parallel outputs, and the
// unblocked reference when verifying.
func SweepFootprint(n int, verify bool) uint64 {
	count := uint64(4)
	if verify {
		count++
	}
	return count * uint64(n) * uint64(n) * 4
}

// Fits reports whether need bytes fit in the currently available memory.
// It answers true when the platform does not report availability.
func Fits(need uint64) bool {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil || vm.Available == 0 {
		return true
	}
	return need <= vm.Available
}
