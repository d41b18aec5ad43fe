// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"strconv"
	"strings"
)

// datHeader holds the decoded header line of one tabular result section
type datHeader struct {
	kind  Kind     // kind of result
	step  int      // step number; -1 if not given
	inc   int      // increment number; -1 if not given
	time  float64  // step time; NaN if not given
	set   string   // node/element set name
	comps []string // component names from parenthesized groups
	line  int      // line number of the header
}

// datRow is one data row in file order
type datRow struct {
	id int       // entity id
	vv []float64 // row values after the id column
}

// ParseDat decodes tabular-print content into a ResultSet. Sections start
// with a header line naming the result kind and the step/increment (or step
// time) and are followed by rows of entity id and values. Any non-numeric
// line closes the current section; unrecognized headers, blank lines and
// separators are skipped
func ParseDat(b []byte) (res *ResultSet, err error) {
	res = new(ResultSet)
	var hdr *datHeader
	var rows []datRow
	flush := func() {
		closeDatTable(res, hdr, rows)
		hdr = nil
		rows = nil
	}
	for i, raw := range strings.Split(string(b), "\n") {
		s := strings.TrimRight(raw, "\r")
		f := strings.Fields(s)
		if len(f) == 0 {
			continue
		}
		if isNumeric(f[0]) {
			if hdr == nil {
				continue
			}
			id, vv, ok := parseDatRow(f)
			if !ok {
				res.warnf("skipping malformed data row at line %d", i+1)
				continue
			}
			rows = append(rows, datRow{id, vv})
			continue
		}
		flush()
		hdr = parseDatHeader(s, i+1)
	}
	flush()
	return
}

// parseDatHeader decodes a candidate header line, returning nil if the line
// does not start with a known result kind phrase
func parseDatHeader(s string, line int) *datHeader {
	fields := strings.Fields(s)
	low := make([]string, len(fields))
	for i, w := range fields {
		low[i] = strings.ToLower(strings.Trim(w, ",:"))
	}

	// kind phrase: longest known prefix of the leading words, stopping at a
	// parenthesized group or a filler word
	n := 0
	for n < len(fields) && n < 4 {
		if strings.HasPrefix(fields[n], "(") || low[n] == "for" || low[n] == "at" || low[n] == "in" {
			break
		}
		n++
	}
	kind := Unknown
	for m := n; m > 0; m-- {
		if k, ok := kindNames[strings.Join(low[:m], " ")]; ok {
			kind = k
			break
		}
	}
	if kind == Unknown {
		return nil
	}

	// step, increment, time and set name tokens
	hdr := &datHeader{kind: kind, step: -1, inc: -1, time: math.NaN(), line: line}
	for i, w := range low {
		switch w {
		case "step":
			if i+1 < len(low) {
				if v, e := strconv.Atoi(low[i+1]); e == nil {
					hdr.step = v
				}
			}
		case "increment", "inc":
			if i+1 < len(low) {
				if v, e := strconv.Atoi(low[i+1]); e == nil {
					hdr.inc = v
				}
			}
		case "time":
			for j := i + 1; j < len(low); j++ {
				if v, e := strconv.ParseFloat(low[j], 64); e == nil {
					hdr.time = v
					break
				}
			}
		case "set":
			var parts []string
			for j := i + 1; j < len(low) && low[j] != "and"; j++ {
				parts = append(parts, fields[j])
			}
			hdr.set = strings.Join(parts, " ")
		}
	}

	// headers carrying neither step/increment nor a time keyword may still
	// end with the step time
	if math.IsNaN(hdr.time) && hdr.step < 0 && hdr.inc < 0 && len(low) > 1 {
		if v, e := strconv.ParseFloat(low[len(low)-1], 64); e == nil {
			hdr.time = v
		}
	}

	// component names from parenthesized groups
	rest := s
	for {
		i := strings.Index(rest, "(")
		if i < 0 {
			break
		}
		j := strings.Index(rest[i:], ")")
		if j < 0 {
			break
		}
		for _, c := range strings.Split(rest[i+1:i+j], ",") {
			if c = strings.TrimSpace(c); c != "" {
				hdr.comps = append(hdr.comps, c)
			}
		}
		rest = rest[i+j+1:]
	}
	return hdr
}

// parseDatRow decodes one data row: entity id followed by values
func parseDatRow(f []string) (id int, vv []float64, ok bool) {
	id, e := strconv.Atoi(f[0])
	if e != nil {
		return
	}
	vv = make([]float64, len(f)-1)
	for i, w := range f[1:] {
		vv[i], e = strconv.ParseFloat(w, 64)
		if e != nil {
			return 0, nil, false
		}
	}
	return id, vv, true
}

// closeDatTable turns the rows of one section into a FieldTable and attaches
// it to the ResultSet. For integration point results a leading ip-number
// column is detected and the rows of each element are averaged into one
// per-element tuple
func closeDatTable(res *ResultSet, hdr *datHeader, rows []datRow) {
	if hdr == nil {
		return
	}
	if len(rows) == 0 {
		res.warnf("dropping %v section with no rows at line %d", hdr.kind, hdr.line)
		return
	}
	loc := locations[hdr.kind]
	rowLen := len(rows[0].vv)
	dropIP := loc == IntPoint && rowLen == defaultNcomp[hdr.kind]+1
	ncomp := rowLen
	if dropIP {
		ncomp--
	}
	if ncomp < 1 {
		res.warnf("dropping %v section with empty rows at line %d", hdr.kind, hdr.line)
		return
	}

	// average rows per entity
	sums := make(map[int][]float64)
	counts := make(map[int]int)
	ndrop := 0
	for _, r := range rows {
		vv := r.vv
		if dropIP {
			vv = vv[1:]
		}
		if len(vv) != ncomp {
			ndrop++
			continue
		}
		if _, ok := sums[r.id]; !ok {
			sums[r.id] = make([]float64, ncomp)
		}
		for j, v := range vv {
			sums[r.id][j] += v
		}
		counts[r.id]++
	}
	if ndrop > 0 {
		res.warnf("dropped %d rows with wrong number of columns in %v section at line %d", ndrop, hdr.kind, hdr.line)
	}
	if len(sums) == 0 {
		res.warnf("dropping %v section with no rows at line %d", hdr.kind, hdr.line)
		return
	}
	vals := make(map[int][]float64, len(sums))
	for id, sum := range sums {
		cnt := float64(counts[id])
		for j := range sum {
			sum[j] /= cnt
		}
		vals[id] = sum
	}

	// component names: leading tokens naming the id and ip columns are
	// dropped; the value names come last. Sections whose names cannot be
	// aligned with the columns carry none
	comps := hdr.comps
	for len(comps) > 0 && idColNames[strings.ToLower(strings.TrimRight(comps[0], "."))] {
		comps = comps[1:]
	}
	if len(comps) > ncomp {
		comps = comps[len(comps)-ncomp:]
	}
	if len(comps) != ncomp {
		comps = nil
	}

	// attach
	time := hdr.time
	if math.IsNaN(time) {
		time = 0
	}
	var st *StepResult
	switch {
	case hdr.step > 0 && hdr.inc > 0:
		st = res.stepByInc(hdr.step, hdr.inc, time, "")
	case hdr.step > 0:
		st = res.stepByTime(hdr.step, time, "")
	default:
		st = res.stepByTime(1, time, "")
	}
	st.addTable(res, &FieldTable{
		Kind:       hdr.kind,
		Location:   loc,
		Ncomp:      ncomp,
		Components: comps,
		SetName:    hdr.set,
		Vals:       vals,
	})
}

// isNumeric tells whether a field starts a data row
func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// idColNames holds parenthesized header tokens naming the id and ip columns
// rather than value columns. Keys are lowercase with trailing dots removed
var idColNames = map[string]bool{
	"elem":      true,
	"element":   true,
	"node":      true,
	"nodal":     true,
	"integ.pnt": true,
	"int.pnt":   true,
	"ip":        true,
}
