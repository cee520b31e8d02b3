// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package mangler

// namer hands out short identifiers in bijective base-26 order:
// a, b, ..., z, aa, ab, ... Names already in use are skipped.
type namer struct {
	// usedNames holds map values, identifiers of the current unit and
	// reserved names.
	usedNames map[string]struct{}

	// isKeyword rejects candidates the target dialect reserves.
	isKeyword func(string) bool

	// counter is the ordinal of the last candidate considered.
	counter uint32
}

func newNamer(isKeyword func(string) bool) *namer {
	if isKeyword == nil {
		isKeyword = func(string) bool { return false }
	}
	return &namer{
		usedNames: make(map[string]struct{}),
		isKeyword: isKeyword,
	}
}

// next returns the next free short name and marks it used.
func (n *namer) next() string {
	for {
		n.counter++
		candidate := shortName(n.counter)
		if n.isUsed(candidate) || n.isKeyword(candidate) {
			continue
		}
		n.reserve(candidate)
		return candidate
	}
}

// reserve marks a name as used without returning it.
func (n *namer) reserve(name string) {
	n.usedNames[name] = struct{}{}
}

func (n *namer) isUsed(name string) bool {
	_, used := n.usedNames[name]
	return used
}

// shortName renders n >= 1 as a bijective base-26 numeral over a-z.
func shortName(n uint32) string {
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('a' + n%26)
		n /= 26
	}
	return string(buf[i:])
}
