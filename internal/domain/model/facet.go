// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"bytes"
	"encoding/json"
)

// FacetIndex maps facet names to their value sets and remembers the order in
// which names were first seen.
type FacetIndex struct {
	names  []string
	values map[string]any
}

// NewFacetIndex returns an empty index
func NewFacetIndex() *FacetIndex {
	return &FacetIndex{values: make(map[string]any)}
}

// Set stores values under name; a repeated name keeps its first position
func (f *FacetIndex) Set(name string, values any) {
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = values
}

// Get returns the value set of name
func (f *FacetIndex) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Names returns the facet names in insertion order
func (f *FacetIndex) Names() []string {
	return append([]string(nil), f.names...)
}

// Len returns the number of facets
func (f *FacetIndex) Len() int {
	return len(f.names)
}

// MarshalJSON writes the index as a JSON object in insertion order
func (f *FacetIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
