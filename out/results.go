// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the reading and querying of FE solver result files.
// Two encodings are supported: the record-oriented field format holding nodal
// result blocks, and the tabular print format holding human-readable result
// sections. Both are decoded into a ResultSet that can be queried by step,
// increment, entity id and result kind
package out

import (
	"sort"

	"github.com/cpmech/gosl/io"
)

// TolT is the tolerance to compare step times
var TolT = 1e-8

// ParseError indicates structurally invalid result-file content; e.g. a file
// truncated in the middle of a record. It carries the position of the
// offending content
type ParseError struct {
	Line int    // 1-based line number
	Byte int    // byte offset
	Msg  string // message
}

// Error returns the error message
func (o *ParseError) Error() string {
	return io.Sf("parse error at line %d (byte %d): %s", o.Line, o.Byte, o.Msg)
}

// LookupError indicates a query for a (step, increment, kind) combination or
// entity id that is absent from the ResultSet
type LookupError struct {
	Msg string // message
}

// Error returns the error message
func (o *LookupError) Error() string { return o.Msg }

// lookErr returns a new LookupError with formatted message
func lookErr(msg string, prm ...interface{}) *LookupError {
	return &LookupError{Msg: io.Sf(msg, prm...)}
}

// FieldTable holds the values of one result kind for one step/increment,
// addressable by entity id. All tuples have the same length Ncomp
type FieldTable struct {
	Kind       Kind              // kind of result
	Location   Location          // where the entities live
	Ncomp      int               // number of components per tuple
	Components []string          // component names; e.g. {"SXX","SYY",...}
	SetName    string            // name of node/element set, if any
	Vals       map[int][]float64 // entity id => tuple of Ncomp values
}

// Ids returns all entity ids of this table in ascending order
func (o *FieldTable) Ids() []int {
	ids := make([]int, 0, len(o.Vals))
	for id := range o.Vals {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Get returns the tuple of one entity id
func (o *FieldTable) Get(id int) (vals []float64, ok bool) {
	vals, ok = o.Vals[id]
	return
}

// StepResult holds all field tables of one (step, increment) combination
type StepResult struct {
	Step     int     // step number
	Inc      int     // increment number within step (1-based)
	Time     float64 // step time
	Analysis string  // analysis type tag; e.g. "static"

	// derived
	kinds  []Kind               // kinds in order of first appearance
	tables map[Kind]*FieldTable // kind => table
}

// Kinds returns the kinds present in this step result, in order of first
// appearance in the file
func (o *StepResult) Kinds() []Kind {
	res := make([]Kind, len(o.kinds))
	copy(res, o.kinds)
	return res
}

// Table returns the field table of one kind
func (o *StepResult) Table(kind Kind) (tab *FieldTable, ok bool) {
	tab, ok = o.tables[kind]
	return
}

// addTable attaches a table to this step result. Tables of a kind already
// present are merged (union of entity ids) when the component counts agree;
// otherwise the new table is dropped with a warning
func (o *StepResult) addTable(res *ResultSet, tab *FieldTable) {
	if o.tables == nil {
		o.tables = make(map[Kind]*FieldTable)
	}
	if old, ok := o.tables[tab.Kind]; ok {
		if old.Ncomp != tab.Ncomp {
			res.warnf("cannot merge %v tables with %d and %d components in step %d increment %d", tab.Kind, old.Ncomp, tab.Ncomp, o.Step, o.Inc)
			return
		}
		for id, vals := range tab.Vals {
			old.Vals[id] = vals
		}
		return
	}
	o.tables[tab.Kind] = tab
	o.kinds = append(o.kinds, tab.Kind)
}

// ResultSet holds the parsed contents of one result file: an ordered
// sequence of step results as they appear in the file. A ResultSet is
// immutable after parsing; concurrent queries are safe
type ResultSet struct {
	Steps    []*StepResult // step results in file order
	Warnings []string      // recoverable conditions found while parsing
}

// warnf appends a formatted warning
func (o *ResultSet) warnf(msg string, prm ...interface{}) {
	o.Warnings = append(o.Warnings, io.Sf(msg, prm...))
}

// StepTimes returns the sorted unique step times
func (o *ResultSet) StepTimes() []float64 {
	times := make([]float64, 0, len(o.Steps))
	for _, st := range o.Steps {
		seen := false
		for _, t := range times {
			if absf(t-st.Time) <= TolT {
				seen = true
				break
			}
		}
		if !seen {
			times = append(times, st.Time)
		}
	}
	sort.Float64s(times)
	return times
}

// Last returns the last step result in file order, or nil if none
func (o *ResultSet) Last() *StepResult {
	if len(o.Steps) == 0 {
		return nil
	}
	return o.Steps[len(o.Steps)-1]
}

// Find returns the step result with the given step and increment numbers, or
// nil if absent
func (o *ResultSet) Find(step, inc int) *StepResult {
	for _, st := range o.Steps {
		if st.Step == step && st.Inc == inc {
			return st
		}
	}
	return nil
}

// stepByTime returns the step result with the given step number and time,
// appending a new one with the next increment number if absent
func (o *ResultSet) stepByTime(step int, time float64, analysis string) *StepResult {
	ninc := 0
	for _, st := range o.Steps {
		if st.Step == step {
			if absf(st.Time-time) <= TolT {
				return st
			}
			ninc++
		}
	}
	st := &StepResult{Step: step, Inc: ninc + 1, Time: time, Analysis: analysis}
	o.Steps = append(o.Steps, st)
	return st
}

// stepByInc returns the step result with the given step and increment
// numbers, appending a new one if absent
func (o *ResultSet) stepByInc(step, inc int, time float64, analysis string) *StepResult {
	if st := o.Find(step, inc); st != nil {
		return st
	}
	st := &StepResult{Step: step, Inc: inc, Time: time, Analysis: analysis}
	o.Steps = append(o.Steps, st)
	return st
}

// absf returns |x|
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
