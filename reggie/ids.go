// Package reggie implements spec.md §4.4-§4.9: the register-based
// bytecode VM ("Reggie"), its compiler, and its typed instruction set.
// Grounded in original_source/reggie/src/{ops,runtime,compiler/function}.rs
// for the instruction shapes and dispatch loop, and in the teacher's
// compiler/codegen/func_info.go for the register/label allocator. Local
// registers come from a per-function counter that only grows (slots are
// never freed or reused), and its final value becomes local_count.
package reggie

// BlockID identifies a compiled function (or the top-level chunk) in a
// Machine's code-block table.
type BlockID int32

// StringID indexes a CodeBlock's constant string pool.
type StringID int32

// JmpLabel is a symbolic jump target, resolved to an instruction offset
// during compilation (spec GLOSSARY).
type JmpLabel int32

// RegisterID is an index into a per-type argument or local register
// file; which file it addresses is determined by the owning
// instruction's opcode, not by the id itself.
type RegisterID int32
