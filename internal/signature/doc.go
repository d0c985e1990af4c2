// Package signature owns the registry of original images.
//
// A Signature is the immutable descriptive metadata of one registered original:
// its byte size, pixel dimensions, colour mode and container format. Register
// builds a Store from a folder in sorted filename order; that order is the
// registration order used to break ranking ties downstream. A Store never
// changes after construction, so it can be shared by concurrent queries
// without locking.
//
// By default any undecodable original aborts registration with a
// *DecodeError. Options.SkipUndecodable switches to logging the file and
// leaving it out instead.
package signature
