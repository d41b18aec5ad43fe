// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// frdColWidth is the width of one value field in fixed-width data lines
const frdColWidth = 12

// scanner walks the raw bytes of a field-format file line by line, keeping
// byte and line positions for diagnostics. Packed records are consumed
// directly from the underlying bytes
type scanner struct {
	b    []byte // raw content
	pos  int    // current byte offset
	line int    // number of lines consumed
}

// nextLine returns the next line without the trailing newline
func (o *scanner) nextLine() (s string, ok bool) {
	if o.pos >= len(o.b) {
		return "", false
	}
	start := o.pos
	for o.pos < len(o.b) && o.b[o.pos] != '\n' {
		o.pos++
	}
	s = strings.TrimRight(string(o.b[start:o.pos]), "\r")
	if o.pos < len(o.b) {
		o.pos++
	}
	o.line++
	return s, true
}

// ParseFrd decodes field-format content into a ResultSet. Nodal result
// blocks (key 100CL) are collected; all other records are skipped. On a
// structural failure no partial ResultSet is returned
func ParseFrd(b []byte) (res *ResultSet, err error) {
	res = new(ResultSet)
	sc := &scanner{b: b}
	for {
		s, ok := sc.nextLine()
		if !ok {
			break
		}
		f := strings.Fields(s)
		if len(f) == 0 {
			continue
		}
		if f[0] != "100CL" {
			continue
		}
		err = parseFieldBlock(res, sc, f)
		if err != nil {
			return nil, err
		}
	}
	return
}

// parseFieldBlock decodes one nodal result block. The header line has been
// split into f already:
//  100CL <key> <time> <nnod> <ictype> <numstp> <format>
// format: 0 or 1 => fixed-width text records, 2 => packed float32 records,
// 3 => packed float64 records
func parseFieldBlock(res *ResultSet, sc *scanner, f []string) error {

	// header
	if len(f) < 7 {
		res.warnf("skipping result block with short header at line %d", sc.line)
		return nil
	}
	time, e1 := strconv.ParseFloat(f[2], 64)
	nnod, e2 := strconv.Atoi(f[3])
	numstp, e3 := strconv.Atoi(f[5])
	format, e4 := strconv.Atoi(f[6])
	if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
		res.warnf("skipping result block with malformed header at line %d", sc.line)
		return nil
	}
	analysis := analysisTag(f[4])

	// block body
	var name string
	var declNcomp, lastID int
	var comps []string
	vals := make(map[int][]float64)
	firstLen := 0
body:
	for {
		s, ok := sc.nextLine()
		if !ok {
			return &ParseError{Line: sc.line, Byte: sc.pos, Msg: "file truncated inside result block"}
		}
		g := strings.Fields(s)
		if len(g) == 0 {
			continue
		}
		switch g[0] {

		case "-4": // entity name and declared number of components
			if len(g) < 3 {
				res.warnf("skipping malformed entity record at line %d", sc.line)
				continue
			}
			name = g[1]
			if n, e := strconv.Atoi(g[2]); e == nil {
				declNcomp = n
			}

		case "-5": // component name
			if len(g) > 1 {
				comps = append(comps, g[1])
			}
			if format >= 2 && declNcomp > 0 && len(comps) == declNcomp {
				if perr := readPacked(sc, format, nnod, declNcomp, vals); perr != nil {
					return perr
				}
			}

		case "-1": // one entity
			id, vv, e := parseFixedValues(s)
			if e != nil {
				res.warnf("skipping malformed data line %d: %v", sc.line, e)
				continue
			}
			if firstLen == 0 {
				firstLen = len(vv)
			}
			vals[id] = vv
			lastID = id

		case "-2": // continuation of the previous entity
			_, vv, e := parseFixedValues(s)
			if e != nil {
				res.warnf("skipping malformed continuation line %d: %v", sc.line, e)
				continue
			}
			vals[lastID] = append(vals[lastID], vv...)

		case "-3": // end of block
			break body

		default:
			res.warnf("skipping unrecognized record %q at line %d", g[0], sc.line)
		}
	}

	// attach table
	if len(vals) == 0 {
		res.warnf("dropping empty result block %q ending at line %d", name, sc.line)
		return nil
	}
	kind := KindFromName(name)
	if kind == Unknown {
		res.warnf("skipping result block with unknown entity %q", name)
		return nil
	}
	ncomp := declNcomp
	if ncomp < 1 {
		ncomp = firstLen
	}
	ndrop := 0
	for id, vv := range vals {
		if len(vv) != ncomp {
			delete(vals, id)
			ndrop++
		}
	}
	if ndrop > 0 {
		res.warnf("dropped %d entities with wrong number of components in %q block (expected %d)", ndrop, name, ncomp)
	}
	if len(vals) == 0 {
		res.warnf("dropping empty result block %q ending at line %d", name, sc.line)
		return nil
	}
	if len(comps) > ncomp {
		comps = comps[:ncomp]
	}
	st := res.stepByTime(numstp, time, analysis)
	st.addTable(res, &FieldTable{
		Kind:       kind,
		Location:   Nodal,
		Ncomp:      ncomp,
		Components: comps,
		Vals:       vals,
	})
	return nil
}

// parseFixedValues decodes a fixed-width data line: columns 4-13 hold the
// entity id (blank on continuation lines) and the remainder holds 12-char
// value fields which may abut without separators
func parseFixedValues(s string) (id int, vv []float64, err error) {
	if len(s) < 13 {
		return 0, nil, chk.Err("line too short (%d chars)", len(s))
	}
	idStr := strings.TrimSpace(s[3:13])
	if idStr != "" {
		id, err = strconv.Atoi(idStr)
		if err != nil {
			return 0, nil, chk.Err("cannot parse entity id %q", idStr)
		}
	}
	rest := strings.TrimRight(s[13:], " ")
	for i := 0; i < len(rest); i += frdColWidth {
		end := i + frdColWidth
		if end > len(rest) {
			end = len(rest)
		}
		fld := strings.TrimSpace(rest[i:end])
		if fld == "" {
			continue
		}
		v, e := strconv.ParseFloat(fld, 64)
		if e != nil {
			return 0, nil, chk.Err("cannot parse value %q", fld)
		}
		vv = append(vv, v)
	}
	return
}

// readPacked consumes nnod packed records following the last component
// record. Each record holds an int32 entity id followed by ncomp float32
// (format 2) or float64 (format 3) values, little-endian
func readPacked(sc *scanner, format, nnod, ncomp int, vals map[int][]float64) *ParseError {
	width := 4
	if format == 3 {
		width = 8
	}
	rec := 4 + ncomp*width
	need := nnod * rec
	if sc.pos+need > len(sc.b) {
		return &ParseError{
			Line: sc.line,
			Byte: sc.pos,
			Msg:  io.Sf("file truncated inside packed block: need %d bytes, have %d", need, len(sc.b)-sc.pos),
		}
	}
	buf := sc.b[sc.pos : sc.pos+need]
	sc.pos += need
	for i := 0; i < nnod; i++ {
		off := i * rec
		id := int(int32(binary.LittleEndian.Uint32(buf[off:])))
		vv := make([]float64, ncomp)
		for j := 0; j < ncomp; j++ {
			p := off + 4 + j*width
			if format == 3 {
				vv[j] = math.Float64frombits(binary.LittleEndian.Uint64(buf[p:]))
			} else {
				vv[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[p:])))
			}
		}
		vals[id] = vv
	}
	// resume line scanning after the packed bytes
	if sc.pos < len(sc.b) && sc.b[sc.pos] == '\n' {
		sc.pos++
	}
	return nil
}

// analysisTag maps the ictype header field to an analysis type tag
func analysisTag(ictype string) string {
	switch ictype {
	case "0":
		return "static"
	case "1":
		return "time step"
	case "2":
		return "frequency"
	case "3":
		return "buckling"
	case "4":
		return "modal dynamic"
	}
	return "type " + ictype
}
