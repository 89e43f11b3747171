// Package dmmu emulates a hardware dynamic memory management unit that
// is driven by two custom RISC-V instructions,
//
//   malloc  0x0003836b  rd=t1 rs1=t2 funct3=000, t1 = malloc(t2 words)
//   free    0x0003a06b  rd=x0 rs1=t2 funct3=010, free(t2)
//
// and exposes cumulative background execution time in two user CSRs,
// 0xE09 for malloc and 0xE0A for free.
//
// The unit answers each request in a fixed number of foreground
// cycles, while book-keeping of its block bitmap continues in the
// background. A request issued while background work is pending stalls
// until the unit is idle. CSR reads only account for background work
// that has completed by the time of the read, callers typically idle
// for a while before reading them.
//
// Unit is not thread safe.
package dmmu
