// Package preflight verifies that the configured folders are usable before a
// run, so a missing originals folder is reported as a readable check result
// instead of a registration error halfway through a batch.
package preflight
