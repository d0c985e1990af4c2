// Package provenance fuses rule scores into a ranked verdict.
//
// Aggregator evaluates every rule against every registered original for one
// candidate image and ranks the originals by total score, keeping registration
// order for ties. Decide applies a Policy to the top candidate. Detective
// wires both together and tags each investigation with a run ID so its log
// records can be correlated.
package provenance
