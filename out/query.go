// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import "github.com/cpmech/gosl/chk"

// QueryResult is an immutable, id-aligned view of one field table: index i
// refers to the same entity in Ids and Vals. Values are copies; modifying
// them never affects the underlying ResultSet
type QueryResult struct {
	Kind Kind        // kind of result
	Step int         // step number
	Inc  int         // increment number
	Time float64     // step time
	Ids  []int       // entity ids
	Vals [][]float64 // Vals[i] is the tuple of entity Ids[i]
}

// Arrays returns the id-aligned arrays of this query result, suitable for
// feeding the math kernel
func (o *QueryResult) Arrays() (ids []int, vals [][]float64) {
	return o.Ids, o.Vals
}

// Comp returns one component column aligned to Ids
func (o *QueryResult) Comp(j int) (res []float64, err error) {
	if len(o.Vals) > 0 && (j < 0 || j >= len(o.Vals[0])) {
		return nil, chk.Err("component index %d out of range [0,%d)", j, len(o.Vals[0]))
	}
	res = make([]float64, len(o.Vals))
	for i, v := range o.Vals {
		res[i] = v[j]
	}
	return
}

// Select returns a QueryResult with the values of one kind for one step and
// increment. step and inc values smaller than 1 select the last available
// step result holding the kind (and, with step given, the last increment of
// that step). A nil or empty ids selects all entities of the table in
// ascending id order; otherwise the given ids and their order are kept.
// Returns a LookupError if the (step, increment, kind) combination or any
// requested id is absent -- never a silently empty result
func (o *ResultSet) Select(kind Kind, step, inc int, ids []int) (res *QueryResult, err error) {
	st, err := o.pick(kind, step, inc)
	if err != nil {
		return
	}
	return o.materialize(st, kind, ids)
}

// SelectTime returns a QueryResult with the values of one kind for the step
// result whose time is nearest to t, among those holding the kind
func (o *ResultSet) SelectTime(kind Kind, t float64, ids []int) (res *QueryResult, err error) {
	var best *StepResult
	for _, st := range o.Steps {
		if _, ok := st.Table(kind); !ok {
			continue
		}
		if best == nil || absf(st.Time-t) < absf(best.Time-t) {
			best = st
		}
	}
	if best == nil {
		return nil, lookErr("no %v results in result set", kind)
	}
	return o.materialize(best, kind, ids)
}

// pick resolves the step result addressed by step and inc, applying the
// last-available defaults
func (o *ResultSet) pick(kind Kind, step, inc int) (st *StepResult, err error) {
	switch {

	// exact step and increment
	case step > 0 && inc > 0:
		st = o.Find(step, inc)
		if st == nil {
			return nil, lookErr("no results for step %d increment %d", step, inc)
		}

	// last increment of given step holding the kind
	case step > 0:
		for _, s := range o.Steps {
			if s.Step != step {
				continue
			}
			if _, ok := s.Table(kind); ok {
				st = s
			}
		}
		if st == nil {
			return nil, lookErr("no %v results for step %d", kind, step)
		}

	// last step result holding the kind
	default:
		for _, s := range o.Steps {
			if _, ok := s.Table(kind); ok {
				st = s
			}
		}
		if st == nil {
			return nil, lookErr("no %v results in result set", kind)
		}
	}
	if _, ok := st.Table(kind); !ok {
		return nil, lookErr("no %v results for step %d increment %d", kind, st.Step, st.Inc)
	}
	return
}

// materialize copies the requested entities of one table into an id-aligned
// QueryResult
func (o *ResultSet) materialize(st *StepResult, kind Kind, ids []int) (res *QueryResult, err error) {
	tab, _ := st.Table(kind)
	if len(ids) == 0 {
		ids = tab.Ids()
	} else {
		ids = append([]int{}, ids...)
	}
	vals := make([][]float64, len(ids))
	for i, id := range ids {
		v, ok := tab.Get(id)
		if !ok {
			return nil, lookErr("entity %d has no %v values in step %d increment %d", id, kind, st.Step, st.Inc)
		}
		vals[i] = append([]float64{}, v...)
	}
	res = &QueryResult{
		Kind: kind,
		Step: st.Step,
		Inc:  st.Inc,
		Time: st.Time,
		Ids:  ids,
		Vals: vals,
	}
	return
}
