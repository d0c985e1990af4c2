// Package main hosts the sleuth CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, registers the originals
// folder, and hands query images to the provenance detective. Every report
// (text, table, JSON or YAML) is rendered from the returned outcome values;
// nothing here scores images itself.
package main
