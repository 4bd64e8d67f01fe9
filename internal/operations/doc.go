// Package operations orchestrates a combine run.
//
// Manager.Run processes the dependent and independent indicator groups, in
// sequence or concurrently, and writes one CSV per group. Each group moves
// through a fixed lifecycle tracked by GroupRun:
//
//	empty -> accumulating (once per file) -> finalizing -> gap_filled -> emitted
//
// Any fatal error moves the group to failed and is returned as an
// *OperationError whose Type tells input, collision, output, config,
// invalid_state and cancellation failures apart. Failed groups write nothing.
//
// OperationTracer wraps each group in a span, adds one event per source file
// and records run metrics through the configured OpenTelemetry providers.
package operations
