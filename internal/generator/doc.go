// Package generator produces synthetic fiber link records for exercising
// the analyzer and the external link budget engine.
//
// Every field is drawn from a fixed, physically plausible distribution
// using a PCG source seeded from the run seed, so a given seed, count and
// scenario always yield byte-identical CSV output. The splice count is not
// sampled; it is derived from the fiber length (one splice per 3 km,
// minimum one).
package generator
