// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// checkBasis checks that v holds the unit eigenvectors of tensor t with
// eigenvalues p and that they form an orthonormal basis
func checkBasis(tst *testing.T, msg string, t, p []float64, v [][]float64) {
	m, err := Ten2Mat(t)
	if err != nil {
		tst.Errorf("%s: Ten2Mat failed:\n%v", msg, err)
		return
	}
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			dot := v[k][0]*v[l][0] + v[k][1]*v[l][1] + v[k][2]*v[l][2]
			want := 0.0
			if k == l {
				want = 1.0
			}
			chk.Float64(tst, io.Sf("%s: v%d·v%d", msg, k, l), 1e-13, dot, want)
		}
		// residual ‖m·vk - pk·vk‖
		res := 0.0
		for i := 0; i < 3; i++ {
			mv := m[i][0]*v[k][0] + m[i][1]*v[k][1] + m[i][2]*v[k][2]
			d := mv - p[k]*v[k][i]
			res += d * d
		}
		chk.Float64(tst, io.Sf("%s: residual %d", msg, k), 1e-11, math.Sqrt(res), 0)
	}
}

func Test_principal01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("principal01. diagonal tensor")

	t := []float64{3, 1, 2, 0, 0, 0}
	p, v, err := Principal(t)
	if err != nil {
		tst.Errorf("Principal failed:\n%v", err)
		return
	}
	io.Pforan("p = %v\n", p)
	chk.Array(tst, "p", 1e-14, p, []float64{3, 2, 1})
	chk.Float64(tst, "dir of p1 along x", 1e-14, math.Abs(v[0][0]), 1)
	chk.Float64(tst, "dir of p2 along z", 1e-14, math.Abs(v[1][2]), 1)
	chk.Float64(tst, "dir of p3 along y", 1e-14, math.Abs(v[2][1]), 1)
	checkBasis(tst, "diag", t, p, v)
}

func Test_principal02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("principal02. degenerate (hydrostatic) tensor")

	t := []float64{5, 5, 5, 0, 0, 0}
	p, v, err := Principal(t)
	if err != nil {
		tst.Errorf("Principal failed:\n%v", err)
		return
	}
	chk.Array(tst, "p", 1e-13, p, []float64{5, 5, 5})
	checkBasis(tst, "hydrostatic", t, p, v)
}

func Test_principal03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("principal03. repeated eigenvalue")

	// eigenvalues: 2±1 in the x-y block and 3 on z => p = {3, 3, 1}
	t := []float64{2, 2, 3, 1, 0, 0}
	p, v, err := Principal(t)
	if err != nil {
		tst.Errorf("Principal failed:\n%v", err)
		return
	}
	chk.Array(tst, "p", 1e-13, p, []float64{3, 3, 1})
	checkBasis(tst, "repeated", t, p, v)

	// the direction of the distinct eigenvalue is fixed (up to sign)
	s := 1.0 / math.Sqrt(2.0)
	dot := v[2][0]*s - v[2][1]*s
	chk.Float64(tst, "dir of p3", 1e-13, math.Abs(dot), 1)
}

func Test_principal04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("principal04. invariance under change of basis")

	t := []float64{100, -50, 25, 10, -5, 2.5}
	r := matMul(rotZ(0.3), rotX(-0.7))

	// rotate: tr := R·m·Rᵀ
	m, err := Ten2Mat(t)
	if err != nil {
		tst.Errorf("Ten2Mat failed:\n%v", err)
		return
	}
	tr := Mat2Ten(matMul(matMul(r, m), transp(r)))

	// von Mises is invariant
	q0, err := VonMises(t)
	if err != nil {
		tst.Errorf("VonMises failed:\n%v", err)
		return
	}
	q1, err := VonMises(tr)
	if err != nil {
		tst.Errorf("VonMises failed:\n%v", err)
		return
	}
	chk.Float64(tst, "von Mises", 1e-11, q1, q0)

	// principal values are invariant and directions rotate by R
	p0, v0, err := Principal(t)
	if err != nil {
		tst.Errorf("Principal failed:\n%v", err)
		return
	}
	p1, v1, err := Principal(tr)
	if err != nil {
		tst.Errorf("Principal failed:\n%v", err)
		return
	}
	chk.Array(tst, "p", 1e-11, p1, p0)
	for k := 0; k < 3; k++ {
		rv := make([]float64, 3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				rv[i] += r[i][j] * v0[k][j]
			}
		}
		dot := rv[0]*v1[k][0] + rv[1]*v1[k][1] + rv[2]*v1[k][2]
		chk.Float64(tst, io.Sf("dir %d rotates by R", k), 1e-11, math.Abs(dot), 1)
	}
}

func Test_worst01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("worst01. worst principal stress")

	chk.Float64(tst, "compression wins", 1e-17, Worst([]float64{10, 0, -60}), -60)
	chk.Float64(tst, "tension wins", 1e-17, Worst([]float64{80, 5, -10}), 80)
	chk.Float64(tst, "tie prefers positive", 1e-17, Worst([]float64{50, 0, -50}), 50)

	res, err := WorstAll([][]float64{
		{100, 0, 0, 0, 0, 0},
		{-100, 0, 0, 0, 0, 0},
	})
	if err != nil {
		tst.Errorf("WorstAll failed:\n%v", err)
		return
	}
	chk.Array(tst, "batch", 1e-12, res, []float64{100, -100})
}

func Test_shear01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shear01. principal shear stresses")

	chk.Array(tst, "shear", 1e-17, Shear([]float64{3, 2, 1}), []float64{0.5, 0.5, 1})
	chk.Float64(tst, "max shear", 1e-17, MaxShear([]float64{3, 2, 1}), 1)

	// maxShear(T) == max(|p1-p2|, |p2-p3|, |p1-p3|)/2
	ts := [][]float64{
		{100, -50, 25, 10, -5, 2.5},
		{1, 2, 3, 4, 5, 6},
	}
	mx, err := MaxShearAll(ts)
	if err != nil {
		tst.Errorf("MaxShearAll failed:\n%v", err)
		return
	}
	ps, _, err := PrincipalAll(ts)
	if err != nil {
		tst.Errorf("PrincipalAll failed:\n%v", err)
		return
	}
	for i, p := range ps {
		want := math.Max(math.Abs(p[0]-p[1]), math.Max(math.Abs(p[1]-p[2]), math.Abs(p[0]-p[2]))) / 2.0
		chk.Float64(tst, io.Sf("tensor %d", i), 1e-13, mx[i], want)
	}
}

// auxiliary 3x3 helpers for the tests

func rotZ(a float64) [][]float64 {
	c, s := math.Cos(a), math.Sin(a)
	return [][]float64{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

func rotX(a float64) [][]float64 {
	c, s := math.Cos(a), math.Sin(a)
	return [][]float64{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func matMul(a, b [][]float64) [][]float64 {
	res := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		res[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				res[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return res
}

func transp(a [][]float64) [][]float64 {
	res := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		res[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			res[i][j] = a[j][i]
		}
	}
	return res
}
