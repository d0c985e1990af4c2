// Package batch runs folders of query images through a detective and tallies
// the verdicts.
//
// Each folder becomes a named section, and so does each immediate subfolder
// that holds images, visited in sorted order. Query files are filtered by
// extension with case folding, so "IMG_01.JPG" is picked up even though
// registration of originals is case-sensitive by default.
package batch
