// Package bytecode implements the chicken virtual machine: the source
// loader, the single flat memory region, and the fetch-decode-execute
// engine for the language's eleven opcodes.
//
// The language has exactly one syntactic unit. A program is a sequence of
// lines, and the number of times the token "chicken" occurs on a line is
// that line's opcode. Memory is one addressable sequence of values laid
// out as three implicit segments:
//
//	[0]            the self-reference sentinel (the whole region)
//	[1]            the program input, as text
//	[2..2+n]       the n program opcodes, plus one implicit trailing Exit
//	[2+n+1..]      the working stack, empty at start
//
// The language is permissive where most machines would trap: out-of-range
// loads, empty-stack pops and non-numeric coercions all resolve to the
// undefined value rather than erroring, and programs may overwrite their
// own opcodes through Store.
package bytecode
