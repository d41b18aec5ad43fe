// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Principal computes the principal values and directions of one tensor.
// p holds the eigenvalues sorted in descending order and v[k] is the unit
// eigenvector corresponding to p[k]. The directions always form an
// orthonormal basis; for repeated eigenvalues any valid basis of the
// degenerate subspace may be returned
func Principal(t []float64) (p []float64, v [][]float64, err error) {
	if err = check(t); err != nil {
		return
	}
	m := mat.NewSymDense(3, []float64{
		t[0], t[3], t[5],
		t[3], t[1], t[4],
		t[5], t[4], t[2],
	})
	var eig mat.EigenSym
	if ok := eig.Factorize(m, true); !ok {
		err = valErr("eigen-decomposition failed for tensor %v", t)
		return
	}
	w := eig.Values(nil) // ascending
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	p = []float64{w[2], w[1], w[0]}
	v = make([][]float64, 3)
	for k := 0; k < 3; k++ {
		j := 2 - k
		v[k] = []float64{vecs.At(0, j), vecs.At(1, j), vecs.At(2, j)}
	}
	return
}

// PrincipalAll computes principal values and directions of a batch of
// tensors. ps[i] and vs[i] correspond to ts[i]
func PrincipalAll(ts [][]float64) (ps [][]float64, vs [][][]float64, err error) {
	ps = make([][]float64, len(ts))
	vs = make([][][]float64, len(ts))
	for i, t := range ts {
		ps[i], vs[i], err = Principal(t)
		if err != nil {
			return nil, nil, err
		}
	}
	return
}

// Worst selects the principal value with maximum absolute value, keeping its
// sign. Ties prefer the algebraically larger value
func Worst(p []float64) (res float64) {
	res = p[0]
	for _, val := range p[1:] {
		a, b := math.Abs(val), math.Abs(res)
		if a > b || (a == b && val > res) {
			res = val
		}
	}
	return
}

// WorstAll computes the worst principal stress of a batch of tensors
func WorstAll(ts [][]float64) (res []float64, err error) {
	ps, _, err := PrincipalAll(ts)
	if err != nil {
		return
	}
	res = make([]float64, len(ps))
	for i, p := range ps {
		res[i] = Worst(p)
	}
	return
}

// Shear computes the principal shear stresses from principal values sorted in
// descending order:
//  τ = {(p1-p2)/2, (p2-p3)/2, (p1-p3)/2}
func Shear(p []float64) []float64 {
	return []float64{(p[0] - p[1]) / 2.0, (p[1] - p[2]) / 2.0, (p[0] - p[2]) / 2.0}
}

// MaxShear returns the maximum absolute principal shear stress
func MaxShear(p []float64) (res float64) {
	for _, s := range Shear(p) {
		if math.Abs(s) > res {
			res = math.Abs(s)
		}
	}
	return
}

// ShearAll computes the principal shear stresses of a batch of tensors
func ShearAll(ts [][]float64) (res [][]float64, err error) {
	ps, _, err := PrincipalAll(ts)
	if err != nil {
		return
	}
	res = make([][]float64, len(ps))
	for i, p := range ps {
		res[i] = Shear(p)
	}
	return
}

// MaxShearAll computes the maximum principal shear stress of a batch of
// tensors
func MaxShearAll(ts [][]float64) (res []float64, err error) {
	ps, _, err := PrincipalAll(ts)
	if err != nil {
		return
	}
	res = make([]float64, len(ps))
	for i, p := range ps {
		res[i] = MaxShear(p)
	}
	return
}
