// Package diagnostic provides located authoring diagnostics for typesynth.
//
// Authoring errors (malformed annotations, unsorted alternatives, setter
// collisions) are detected once at schema-processing time and carry the
// source position of the offending declaration. A failure in one target type
// never stops processing of its siblings; diagnostics are collected and
// reported together.
package diagnostic
