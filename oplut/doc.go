// Package oplut compiles masked bit patterns (opcode encodings and the like)
// into a chain of lookup tables and dispatches runtime values through it.
//
// A Pattern is a (value, mask, action) triple: the bits set in the mask must
// equal the corresponding bits of the value, all other bits are don't-care.
//
// Construction:
// ------------
//
// At every level the compiler ANDs the masks of all patterns still alive
// (minus the bits already known on the path) and takes the lowest run of set
// bits, at most MaxFieldWidth bits wide, as the field of that level:
//
//	masks:     1111_1111_0000_0000   movw  0x0100
//	           1111_1111_0000_0000   muls  0x0200
//	           1111_1111_1000_1000   mulsu 0x0300
//	           1111_1111_1000_1000   fmul  0x0308
//	           -------------------
//	candidate: 1111_1111_0000_0000
//	field:     0000_1111_0000_0000   (shift 8, width 16 with MaxFieldWidth 4)
//
// Each field yields a table of Width slots. A slot reached by one pattern is
// either Terminal (all mask bits are known on the path) or Guarded (the value
// is re-checked against the pattern at dispatch). A slot reached by two or
// more patterns links to a nested table built from the bits known so far:
//
//	[root sh:8 w:16] --+-- 1: guarded movw
//	                   +-- 2: guarded muls
//	                   `-- 3: [table sh:3 w:2] --+-- 0: guarded mulsu
//	                                             `-- 1: guarded fmul
//
// Patterns that no remaining bit can tell apart make the whole set ambiguous.
//
// Memory:
// ------
//
// Construction is split in two passes sharing one traversal: PlanFor counts the
// exact number of slots and tables, Build fills a Storage of exactly that
// size. Embedded callers can pre-size Storage statically; Create does both
// passes and allocates.
//
// Tables live in a flat pool and refer to each other by index, slots live in
// another flat pool and tables refer to them by offset.
package oplut
