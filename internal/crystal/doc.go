// Package crystal holds the crystallographic collaborators of the mask engine.
//
// Responsibilities: unit-cell metric (Gram matrix, volume, reciprocal lengths),
// symmetry operators in fractional coordinates, and a small built-in table of
// space groups with their asymmetric-unit shapes.
// Key types: UnitCell, SymOp, SpaceGroup.
//
// Dependency rule: crystal may depend on asu but never on masks.
package crystal
