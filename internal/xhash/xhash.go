// Package xhash is the single stable-hash family used across the engine.
//
// Every colour, trace-event reason, and invariant-fact hash in this module
// goes through here so that two runs over equivalent input produce
// bit-identical symmetry traces (spec: "Hash stability" — one fixed seed,
// wrapping 64-bit arithmetic throughout a run).
package xhash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// seed is the fixed digest seed. It never changes across a process
// lifetime or across runs: changing it would silently break reproducible
// symmetry traces for anyone comparing `vole.trace` output across builds.
const seed uint64 = 0x9E3779B97F4A7C15

// Int hashes a single 64-bit value.
func Int(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return digest(buf[:])
}

// Ints hashes a sequence of 64-bit values, order-sensitive.
func Ints(vs ...uint64) uint64 {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	return digest(buf)
}

// Pair hashes an ordered pair (a, b); used to fold (colour, depth) in
// digraph merge and to salt the refiners' partition keys.
func Pair(a, b uint64) uint64 {
	return Ints(a, b)
}

// String hashes a UTF-8 string, used for refiner names and other textual
// invariant facts that must participate in the trace.
func String(s string) uint64 {
	return digest([]byte(s))
}

// Bytes hashes an arbitrary byte slice.
func Bytes(b []byte) uint64 {
	return digest(b)
}

func digest(b []byte) uint64 {
	d := xxhash.New()
	var seedBuf [8]byte
	binary.LittleEndian.PutUint64(seedBuf[:], seed)
	_, _ = d.Write(seedBuf[:])
	_, _ = d.Write(b)
	return d.Sum64()
}

// Combine folds an additional value into an existing accumulator using
// wrapping 64-bit arithmetic; Digraph.Hash and the host refiner's image
// cache key use it. The digraph merge step and WL colouring do their own
// wrapping sums and do not call it.
func Combine(acc, v uint64) uint64 {
	return acc + v*0x100000001B3 + seed
}
