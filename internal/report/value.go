// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Value, the cell payload of key/value rows. A row with two
// cells carries a single string; a wider row carries everything after its key.
package report

// Value is either a single string or an ordered list of strings.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar creates a single-string Value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List creates a list Value. The slice is copied.
func List(items []string) Value {
	c := make([]string, len(items))
	copy(c, items)
	return Value{list: c, isList: true}
}

// FromCells builds the value half of a key/value row: the lone cell for a
// two-cell row, all remaining cells otherwise.
func FromCells(rest []string) Value {
	if len(rest) == 1 {
		return Scalar(rest[0])
	}
	return List(rest)
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool {
	return v.isList
}

// String returns the scalar value, or "" for a list.
func (v Value) String() string {
	return v.scalar
}

// Items returns the list value, or a one-element slice for a scalar.
func (v Value) Items() []string {
	if v.isList {
		return v.list
	}
	return []string{v.scalar}
}

// MarshalYAML emits a scalar as a string and a list as a sequence.
func (v Value) MarshalYAML() (any, error) {
	if v.isList {
		return v.list, nil
	}
	return v.scalar, nil
}
