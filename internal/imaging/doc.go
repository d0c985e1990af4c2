// Package imaging holds the pixel-level primitives the similarity rules are
// built on: decoding with a bounded cache of decoded images, joint colour
// histograms with correlation, normalized cross-correlation template search,
// and FAST corners with rotated BRIEF descriptors matched under Hamming
// distance.
//
// Everything here is pure Go. Decoders for JPEG, PNG and GIF come from the
// standard library; BMP, TIFF and WebP candidates are decoded through
// golang.org/x/image. Functions are safe for concurrent use; a decoded Image
// is never mutated after Load returns it.
package imaging
