// Package masks computes bulk-solvent masks on a periodic grid.
//
// Responsibilities: rasterising the asymmetric unit onto the grid, expanding
// atoms by symmetry around it, carving accessible and contact surfaces, and
// deriving mask structure factors by FFT.
// Key types: AtomMask, Grid, Cell, GridSymOp, ShrinkNeighbors.
//
// All stages run sequentially and mutate the one Grid owned by an AtomMask.
// Input problems are returned as errors; broken numeric invariants (the ASU
// not tiling the cell, a site symmetry order not dividing order_z) panic,
// since they mean the space group or ASU table is inconsistent.
//
// Dependency rule: masks depends on crystal, asu and config. Apart from
// DefaultMaskConfig reading the defaults file, it does no I/O.
package masks
