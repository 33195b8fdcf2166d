// Package plan classifies the fields of a builder target and produces the
// BuilderPlan consumed by code generation.
//
// Planning pipeline:
//  1. analyze extracts FieldDescriptors from the target struct
//  2. each field is classified as Required, Optional or Accumulating from its
//     declared type (is it an optional wrapper?) and its builder:"each=..."
//     annotation
//  3. storage and item types are computed with the wrapper detectors
//  4. plan-level checks reject setter collisions, embedded and blank fields
//     and generic targets
//
// Everything here is a pure function of the extracted schema.
package plan
