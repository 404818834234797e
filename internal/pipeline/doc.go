// Package pipeline implements the idempotent asset fetch loop: every table
// entry becomes one file in the output directory, entries whose file already
// passes the size check are skipped, and failures are recorded per item
// without stopping the run.
package pipeline
