// Package cpu implements the DCPU-16 processor and assembler.
//
// The processor has eight 16-bit general registers (A, B, C, X, Y, Z, I, J),
// the PC, SP, EX, and IA special registers, and a flat 65,536-word memory.
// Instructions are fetched, decoded, and executed one at a time by Step,
// which also delivers queued interrupts and fires device wake requests
// that have come due on the cycle counter.
//
// The assembler translates the DCPU-16 mnemonic syntax into a memory image,
// supporting labels, equates, DAT blocks, and compile-time expression
// evaluation.
package cpu
