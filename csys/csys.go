// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package csys implements local coordinate systems (reference frames) and the
// transformation of points, vectors and symmetric tensors between a local
// frame, the global frame, and other local frames
package csys

import (
	"math"

	"github.com/cpmech/gopost/tsr"
	"github.com/cpmech/gosl/io"
)

// Tol is the tolerance below which the cross product of the defining
// directions is considered zero; i.e. the defining points are collinear
var Tol = 1e-10

// ValidationError indicates invalid input to a coordinate system operation;
// e.g. wrong arity or collinear defining points
type ValidationError struct {
	Msg string // message
}

// Error returns the error message
func (o *ValidationError) Error() string { return o.Msg }

// valErr returns a new ValidationError with formatted message
func valErr(msg string, prm ...interface{}) *ValidationError {
	return &ValidationError{Msg: io.Sf(msg, prm...)}
}

// System represents a local reference frame defined by an origin, a point on
// the local x-axis and a point in the local x-y plane. The orthonormal
// rotation matrix is derived from the points on demand and cached; it is
// recomputed only when the defining points change
type System struct {

	// input
	origin  []float64 // origin of the frame in global coordinates
	axisPt  []float64 // point on the local x-axis
	planePt []float64 // point in the local x-y plane

	// derived
	rot     [][]float64 // rotation matrix; rows are the local axes in global coordinates
	derived bool        // rot is derived from the defining points
}

// New returns a new System defined by three points given in global
// coordinates: the origin, a point on the local x-axis, and a point in the
// local x-y plane. Returns a ValidationError if any point does not have 3
// components or if the three points are collinear
func New(origin, axisPt, planePt []float64) (o *System, err error) {
	o = new(System)
	err = o.SetPoints(origin, axisPt, planePt)
	if err != nil {
		return nil, err
	}
	return
}

// SetPoints resets the defining points and recomputes the rotation matrix.
// On error the previous state is left unchanged
func (o *System) SetPoints(origin, axisPt, planePt []float64) (err error) {
	if len(origin) != 3 || len(axisPt) != 3 || len(planePt) != 3 {
		return valErr("defining points must have 3 components each; got %d, %d and %d", len(origin), len(axisPt), len(planePt))
	}
	rot, err := basis(origin, axisPt, planePt)
	if err != nil {
		return
	}
	o.origin = cloneVec(origin)
	o.axisPt = cloneVec(axisPt)
	o.planePt = cloneVec(planePt)
	o.rot = rot
	o.derived = true
	return
}

// Origin returns a copy of the origin of this frame in global coordinates
func (o *System) Origin() []float64 { return cloneVec(o.origin) }

// R returns a copy of the rotation matrix of this frame. Rows are the local
// axes expressed in global coordinates
func (o *System) R() [][]float64 {
	r := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		r[i] = cloneVec(o.rot[i])
	}
	return r
}

// Move shifts the origin by the increment vector dv, keeping the orientation
func (o *System) Move(dv []float64) (err error) {
	if len(dv) != 3 {
		return valErr("increment vector must have 3 components; got %d", len(dv))
	}
	for i := 0; i < 3; i++ {
		o.origin[i] += dv[i]
	}
	if o.derived {
		for i := 0; i < 3; i++ {
			o.axisPt[i] += dv[i]
			o.planePt[i] += dv[i]
		}
	}
	return
}

// RotateX rotates this frame about its local x-axis by ang [rad]
func (o *System) RotateX(ang float64) { o.rotate(0, ang) }

// RotateY rotates this frame about its local y-axis by ang [rad]
func (o *System) RotateY(ang float64) { o.rotate(1, ang) }

// RotateZ rotates this frame about its local z-axis by ang [rad]
func (o *System) RotateZ(ang float64) { o.rotate(2, ang) }

// rotate rotates all axes about local axis # idx. After an explicit rotation
// the orientation is no longer tied to the defining points
func (o *System) rotate(idx int, ang float64) {
	k := cloneVec(o.rot[idx])
	for i := 0; i < 3; i++ {
		o.rot[i] = rotVec(o.rot[i], k, ang)
	}
	o.derived = false
}

// ToGlobalPoint expresses a point given in this frame in the global frame
// (rotation and translation)
func (o *System) ToGlobalPoint(p []float64) (res []float64, err error) {
	res, err = o.ToGlobalVec(p)
	if err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		res[i] += o.origin[i]
	}
	return
}

// FromGlobalPoint expresses a point given in the global frame in this frame
func (o *System) FromGlobalPoint(p []float64) (res []float64, err error) {
	if len(p) != 3 {
		return nil, valErr("point must have 3 components; got %d", len(p))
	}
	d := []float64{p[0] - o.origin[0], p[1] - o.origin[1], p[2] - o.origin[2]}
	return o.FromGlobalVec(d)
}

// ToGlobalVec expresses a vector given in this frame in the global frame
// (rotation only)
func (o *System) ToGlobalVec(v []float64) (res []float64, err error) {
	if len(v) != 3 {
		return nil, valErr("vector must have 3 components; got %d", len(v))
	}
	res = make([]float64, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i] += o.rot[j][i] * v[j] // res := Rᵀ v
		}
	}
	return
}

// FromGlobalVec expresses a vector given in the global frame in this frame
func (o *System) FromGlobalVec(v []float64) (res []float64, err error) {
	if len(v) != 3 {
		return nil, valErr("vector must have 3 components; got %d", len(v))
	}
	res = make([]float64, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i] += o.rot[i][j] * v[j] // res := R v
		}
	}
	return
}

// ToGlobalTensor expresses a symmetric tensor {xx,yy,zz,xy,yz,zx} given in
// this frame in the global frame
func (o *System) ToGlobalTensor(t []float64) (res []float64, err error) {
	m, err := tsr.Ten2Mat(t)
	if err != nil {
		return
	}
	g := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		g[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					g[i][j] += o.rot[k][i] * m[k][l] * o.rot[l][j] // g := Rᵀ m R
				}
			}
		}
	}
	res = tsr.Mat2Ten(g)
	return
}

// FromGlobalTensor expresses a symmetric tensor given in the global frame in
// this frame
func (o *System) FromGlobalTensor(t []float64) (res []float64, err error) {
	m, err := tsr.Ten2Mat(t)
	if err != nil {
		return
	}
	g := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		g[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					g[i][j] += o.rot[i][k] * m[k][l] * o.rot[j][l] // g := R m Rᵀ
				}
			}
		}
	}
	res = tsr.Mat2Ten(g)
	return
}

// TransformPoint expresses a point given in this frame in the frame of dst
func (o *System) TransformPoint(dst *System, p []float64) (res []float64, err error) {
	res, err = o.ToGlobalPoint(p)
	if err != nil {
		return
	}
	return dst.FromGlobalPoint(res)
}

// TransformVec expresses a vector given in this frame in the frame of dst
func (o *System) TransformVec(dst *System, v []float64) (res []float64, err error) {
	res, err = o.ToGlobalVec(v)
	if err != nil {
		return
	}
	return dst.FromGlobalVec(res)
}

// TransformTensor expresses a symmetric tensor given in this frame in the
// frame of dst
func (o *System) TransformTensor(dst *System, t []float64) (res []float64, err error) {
	res, err = o.ToGlobalTensor(t)
	if err != nil {
		return
	}
	return dst.FromGlobalTensor(res)
}

// basis computes the orthonormal rotation matrix from the defining points.
// Row 0 points from origin to axisPt; row 2 is normal to the plane spanned
// by the two defining directions; row 1 completes the right-handed triad
func basis(origin, axisPt, planePt []float64) (rot [][]float64, err error) {
	e0 := make([]float64, 3)
	vp := make([]float64, 3)
	for i := 0; i < 3; i++ {
		e0[i] = axisPt[i] - origin[i]
		vp[i] = planePt[i] - origin[i]
	}
	n0 := norm(e0)
	np := norm(vp)
	if n0 < Tol || np < Tol {
		return nil, valErr("axis point and plane point must be distinct from the origin")
	}
	e2 := cross(e0, vp) // e2 := e0 cross vp
	n2 := norm(e2)
	if n2 < Tol*n0*np {
		return nil, valErr("defining points are collinear: origin=%v axisPt=%v planePt=%v", origin, axisPt, planePt)
	}
	for i := 0; i < 3; i++ {
		e0[i] /= n0
		e2[i] /= n2
	}
	e1 := cross(e2, e0) // e1 := e2 cross e0
	rot = [][]float64{e0, e1, e2}
	return
}

// cross returns w := u cross v
func cross(u, v []float64) []float64 {
	return []float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// norm returns the Euclidean norm of v
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// rotVec rotates v about the unit axis k by ang [rad] (Rodrigues formula)
func rotVec(v, k []float64, ang float64) []float64 {
	si, co := math.Sin(ang), math.Cos(ang)
	kxv := cross(k, v)
	kv := k[0]*v[0] + k[1]*v[1] + k[2]*v[2]
	res := make([]float64, 3)
	for i := 0; i < 3; i++ {
		res[i] = v[i]*co + kxv[i]*si + k[i]*kv*(1.0-co)
	}
	return res
}

// cloneVec returns a copy of v
func cloneVec(v []float64) []float64 {
	res := make([]float64, len(v))
	copy(res, v)
	return res
}
