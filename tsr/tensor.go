// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tsr implements operations on symmetric second-order tensors such as
// invariant stresses and principal values/directions. All functions work on
// tensors given as 6-component vectors in the canonical order
// {xx, yy, zz, xy, yz, zx}
package tsr

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Ncp is the number of components of a symmetric second-order tensor
const Ncp = 6

// ValidationError indicates malformed input to a kernel operation; e.g. a
// tensor with the wrong number of components
type ValidationError struct {
	Msg string // message
}

// Error returns the error message
func (o *ValidationError) Error() string { return o.Msg }

// valErr returns a new ValidationError with formatted message
func valErr(msg string, prm ...interface{}) *ValidationError {
	return &ValidationError{Msg: io.Sf(msg, prm...)}
}

// check validates the arity of one tensor
func check(t []float64) error {
	if len(t) != Ncp {
		return valErr("tensor must have %d components {xx,yy,zz,xy,yz,zx}; got %d", Ncp, len(t))
	}
	return nil
}

// VonMises computes the von Mises equivalent stress of one tensor:
//  q = sqrt(((sxx-syy)² + (syy-szz)² + (szz-sxx)²)/2 + 3·(sxy² + syz² + szx²))
func VonMises(t []float64) (res float64, err error) {
	if err = check(t); err != nil {
		return
	}
	dxy := t[0] - t[1]
	dyz := t[1] - t[2]
	dzx := t[2] - t[0]
	res = math.Sqrt(0.5*(dxy*dxy+dyz*dyz+dzx*dzx) + 3.0*(t[3]*t[3]+t[4]*t[4]+t[5]*t[5]))
	return
}

// VonMisesAll computes the von Mises equivalent stress of a batch of tensors
func VonMisesAll(ts [][]float64) (res []float64, err error) {
	res = make([]float64, len(ts))
	for i, t := range ts {
		res[i], err = VonMises(t)
		if err != nil {
			return nil, err
		}
	}
	return
}

// Ten2Mat converts one tensor to its 3x3 symmetric matrix form
func Ten2Mat(t []float64) (m [][]float64, err error) {
	if err = check(t); err != nil {
		return
	}
	m = [][]float64{
		{t[0], t[3], t[5]},
		{t[3], t[1], t[4]},
		{t[5], t[4], t[2]},
	}
	return
}

// Mat2Ten converts a 3x3 symmetric matrix to the 6-component tensor form.
// Only the upper triangle of m is read
func Mat2Ten(m [][]float64) []float64 {
	return []float64{m[0][0], m[1][1], m[2][2], m[0][1], m[1][2], m[2][0]}
}
