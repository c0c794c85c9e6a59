// Package matrix defines the dense square integer matrix shared by the
// multiplication kernels, together with its validation rules and the seeded
// random generator used to build benchmark inputs.
package matrix
