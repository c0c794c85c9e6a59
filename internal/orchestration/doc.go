// Package orchestration coordinates a benchmark run: it generates the inputs,
// drives the sweep while feeding progress to a reporter, and hands the
// finished report to a presenter. Presentation concerns stay behind the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
