// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_frd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frd01. field-format file")

	res, err := ReadResults("data/beam.frd")
	if err != nil {
		tst.Errorf("ReadResults failed:\n%v", err)
		return
	}

	// two increments of step 1
	if len(res.Steps) != 2 {
		tst.Errorf("wrong number of step results: %d", len(res.Steps))
		return
	}
	st1, st2 := res.Steps[0], res.Steps[1]
	chk.Ints(tst, "steps", []int{st1.Step, st2.Step}, []int{1, 1})
	chk.Ints(tst, "increments", []int{st1.Inc, st2.Inc}, []int{1, 2})
	chk.Float64(tst, "time of increment 1", 1e-15, st1.Time, 0.34)
	chk.Float64(tst, "time of increment 2", 1e-15, st2.Time, 1.0)
	chk.Array(tst, "step times", 1e-15, res.StepTimes(), []float64{0.34, 1.0})
	if st1.Analysis != "static" {
		tst.Errorf("wrong analysis tag: %q", st1.Analysis)
		return
	}

	// kinds in file order
	for _, st := range res.Steps {
		kinds := st.Kinds()
		if len(kinds) != 2 || kinds[0] != Displacement || kinds[1] != Stress {
			tst.Errorf("wrong kinds: %v", kinds)
			return
		}
	}

	// displacement table of increment 1
	dis, ok := st1.Table(Displacement)
	if !ok {
		tst.Errorf("missing displacement table")
		return
	}
	chk.Ints(tst, "disp ids", dis.Ids(), []int{1, 2, 5})
	chk.Strings(tst, "disp components", dis.Components, []string{"D1", "D2", "D3"})
	if dis.Ncomp != 3 || dis.Location != Nodal {
		tst.Errorf("wrong table shape: ncomp=%d loc=%v", dis.Ncomp, dis.Location)
		return
	}
	chk.Array(tst, "disp node 1", 1e-15, dis.Vals[1], []float64{1, -1.5, 2})
	chk.Array(tst, "disp node 5", 1e-15, dis.Vals[5], []float64{-2, 1, 0})

	// stress table of increment 1; negative values abut their neighbours
	sig, ok := st1.Table(Stress)
	if !ok {
		tst.Errorf("missing stress table")
		return
	}
	chk.Strings(tst, "stress components", sig.Components, []string{"SXX", "SYY", "SZZ", "SXY", "SYZ", "SZX"})
	chk.Array(tst, "stress node 1", 1e-15, sig.Vals[1], []float64{100, -50, 25, 10, -5, 2.5})
	chk.Array(tst, "stress node 2", 1e-15, sig.Vals[2], []float64{0, 0, 0, 30, 0, 0})

	// node 5 of increment 2 is split over a continuation line
	sig2, _ := st2.Table(Stress)
	chk.Array(tst, "stress node 5 (continuation)", 1e-15, sig2.Vals[5], []float64{2, 4, 6, 8, 10, 12})

	// the block with unknown entity must be skipped with a warning
	if len(res.Warnings) != 1 {
		tst.Errorf("wrong warnings: %v", res.Warnings)
		return
	}
	if !strings.Contains(res.Warnings[0], "CT3D-MIS") {
		tst.Errorf("warning must name the unknown entity: %q", res.Warnings[0])
	}
	io.Pforan("warnings = %v\n", res.Warnings)
}

// packedFrd builds a field-format file with one packed displacement block
func packedFrd(format int, nnod int, withRecords int) []byte {
	var buf bytes.Buffer
	buf.WriteString("    1C  Model\n")
	buf.WriteString(io.Sf("  100CL  101 1.00000E+00 %d 0 1 %d\n", nnod, format))
	buf.WriteString(" -4  DISP        3    1\n")
	buf.WriteString(" -5  D1          1    2    1    0\n")
	buf.WriteString(" -5  D2          1    2    2    0\n")
	buf.WriteString(" -5  D3          1    2    3    0\n")
	vals := [][]float64{
		{1.5, -2.25, 3.0},
		{0.5, 0.25, -1.0},
	}
	ids := []int32{1, 7}
	for i := 0; i < withRecords; i++ {
		binary.Write(&buf, binary.LittleEndian, ids[i])
		for _, v := range vals[i] {
			if format == 3 {
				binary.Write(&buf, binary.LittleEndian, v)
			} else {
				binary.Write(&buf, binary.LittleEndian, float32(v))
			}
		}
	}
	buf.WriteString("\n -3\n")
	return buf.Bytes()
}

func Test_frd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frd02. packed records")

	for _, format := range []int{2, 3} {
		res, err := ParseFrd(packedFrd(format, 2, 2))
		if err != nil {
			tst.Errorf("ParseFrd failed:\n%v", err)
			return
		}
		if len(res.Steps) != 1 {
			tst.Errorf("wrong number of step results: %d", len(res.Steps))
			return
		}
		dis, ok := res.Steps[0].Table(Displacement)
		if !ok {
			tst.Errorf("missing displacement table")
			return
		}
		chk.Ints(tst, io.Sf("format %d: ids", format), dis.Ids(), []int{1, 7})
		chk.Array(tst, io.Sf("format %d: node 1", format), 1e-15, dis.Vals[1], []float64{1.5, -2.25, 3})
		chk.Array(tst, io.Sf("format %d: node 7", format), 1e-15, dis.Vals[7], []float64{0.5, 0.25, -1})
	}
}

func Test_frd03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frd03. truncated files must fail")

	// text block without end marker
	b := []byte("    1C  Model\n" +
		"  100CL  101 1.00000E+00 1 0 1 1\n" +
		" -4  DISP        3    1\n" +
		" -1         1 1.00000E+00 2.00000E+00 3.00000E+00\n")
	res, err := ParseFrd(b)
	if err == nil {
		tst.Errorf("ParseFrd must fail with a truncated block")
		return
	}
	if res != nil {
		tst.Errorf("no partial ResultSet may escape a parse failure")
		return
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		tst.Errorf("error must be a ParseError; got %v", err)
		return
	}
	io.Pforan("err = %v\n", err)

	// packed block with missing records
	res, err = ParseFrd(packedFrd(2, 5, 1))
	if err == nil || res != nil {
		tst.Errorf("ParseFrd must fail with a truncated packed block")
		return
	}
	if !errors.As(err, &perr) {
		tst.Errorf("error must be a ParseError; got %v", err)
		return
	}
	if perr.Byte == 0 {
		tst.Errorf("ParseError must carry the byte offset")
	}
	io.Pforan("err = %v\n", err)
}

func Test_frd04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frd04. malformed block headers are recoverable")

	b := []byte("    1C  Model\n" +
		"  100CL  101 not-a-time 1 0 1 1\n" +
		" -4  DISP        3    1\n" +
		" -1         1 1.00000E+00 2.00000E+00 3.00000E+00\n" +
		" -3\n")
	res, err := ParseFrd(b)
	if err != nil {
		tst.Errorf("ParseFrd failed:\n%v", err)
		return
	}
	if len(res.Steps) != 0 {
		tst.Errorf("no step results expected; got %d", len(res.Steps))
		return
	}
	if len(res.Warnings) != 1 {
		tst.Errorf("wrong warnings: %v", res.Warnings)
	}
}
