package model

import (
	"fmt"
	"math/bits"
)

// OutputState is the spend state of a single transaction output.
type OutputState uint8

const (
	// Spent is stored as a cleared bit.
	Spent OutputState = 0
	// Unspent is stored as a set bit.
	Unspent OutputState = 1
)

func (s OutputState) String() string {
	if s == Unspent {
		return "unspent"
	}
	return "spent"
}

// OutputStates is a packed bitset with one bit per output, bit set = Unspent.
// Bits are stored least-significant first within each byte; padding bits are
// always zero. Values are copy-on-write.
type OutputStates struct {
	bits   []byte
	length int
}

// NewOutputStates returns length outputs all in the given state.
func NewOutputStates(length int, state OutputState) OutputStates {
	s := OutputStates{bits: make([]byte, (length+7)/8), length: length}
	if state == Unspent {
		for i := range s.bits {
			s.bits[i] = 0xff
		}
		s.clearPadding()
	}
	return s
}

// OutputStatesFromBytes wraps a packed bitset read from storage.
func OutputStatesFromBytes(length int, packed []byte) (OutputStates, error) {
	if length < 0 {
		return OutputStates{}, fmt.Errorf("negative output count %d", length)
	}
	if len(packed) != (length+7)/8 {
		return OutputStates{}, fmt.Errorf("output states: %d bytes for %d outputs", len(packed), length)
	}
	s := OutputStates{bits: append([]byte(nil), packed...), length: length}
	if rem := length % 8; rem != 0 && s.bits[len(s.bits)-1]>>rem != 0 {
		return OutputStates{}, fmt.Errorf("output states: padding bits set")
	}
	return s, nil
}

// Len returns the number of outputs tracked.
func (s OutputStates) Len() int { return s.length }

// Get returns the state of output i.
func (s OutputStates) Get(i int) OutputState {
	if i < 0 || i >= s.length {
		panic(fmt.Sprintf("output index %d out of range [0,%d)", i, s.length))
	}
	return OutputState((s.bits[i/8] >> (i % 8)) & 1)
}

// Set returns a copy with output i in the given state.
func (s OutputStates) Set(i int, state OutputState) OutputStates {
	if i < 0 || i >= s.length {
		panic(fmt.Sprintf("output index %d out of range [0,%d)", i, s.length))
	}
	out := OutputStates{bits: append([]byte(nil), s.bits...), length: s.length}
	if state == Unspent {
		out.bits[i/8] |= 1 << (i % 8)
	} else {
		out.bits[i/8] &^= 1 << (i % 8)
	}
	return out
}

// UnspentCount returns the number of set bits.
func (s OutputStates) UnspentCount() int {
	n := 0
	for _, b := range s.bits {
		n += bits.OnesCount8(b)
	}
	return n
}

// All reports whether every output is in the given state.
func (s OutputStates) All(state OutputState) bool {
	unspent := s.UnspentCount()
	if state == Unspent {
		return unspent == s.length
	}
	return unspent == 0
}

// Bytes returns a copy of the packed bitset.
func (s OutputStates) Bytes() []byte {
	return append([]byte(nil), s.bits...)
}

// Equal compares two bitsets.
func (s OutputStates) Equal(other OutputStates) bool {
	if s.length != other.length {
		return false
	}
	for i := range s.bits {
		if s.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

func (s OutputStates) clearPadding() {
	if rem := s.length % 8; rem != 0 {
		s.bits[len(s.bits)-1] &= byte(1<<rem) - 1
	}
}

// String renders one character per output, 1 for unspent.
func (s OutputStates) String() string {
	buf := make([]byte, s.length)
	for i := range buf {
		buf[i] = '0' + byte(s.Get(i))
	}
	return string(buf)
}
