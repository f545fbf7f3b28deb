// Package ingestion turns a health-data export into the persisted dataset.
//
// The pipeline runs leaf-first: locate an export archive or document,
// extract the canonical document from the archive, stream-parse it into
// typed entries, normalize and deduplicate them, then stage everything
// into a fresh dataset generation and commit it with an atomic swap.
//
// Parsing is strictly sequential and constant-memory; only the staged
// batch flushes run on a worker pool. A per-entry problem increments the
// run's skip count and never aborts the run, while archive- and
// store-level failures abort the run and leave the previously committed
// dataset untouched.
package ingestion
