/*
 * gonum.go, part of closepairs.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//gonum.go contains what is needed for handling the gonum/mat types.
//Within the package a "vector" is a row of the matrix, i.e. the
//cartesian coordinates of a point in 3D space.

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Matrix is a set of vectors in 3D space, stored as the rows of a
// gonum Dense with exactly 3 columns.
type Matrix struct {
	*mat.Dense
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, &Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return &Matrix{new(mat.Dense)}, nil
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// FromVecs returns a new Matrix with one row per element of vecs.
func FromVecs(vecs []r3.Vec) *Matrix {
	F := Zeros(len(vecs))
	for i, v := range vecs {
		F.SetVec(i, v)
	}
	return F
}

// PrincipalAxis returns the unit vector along the direction of greatest
// variance of the vectors of F whose indexes are in clist (all of them if
// clist is nil). The eigenvectors come from a gonum EigenSym factorization
// of the covariance matrix.
func (F *Matrix) PrincipalAxis(clist []int) (r3.Vec, error) {
	sub := F
	if clist != nil {
		sub = Zeros(len(clist))
		if err := sub.SomeVecsSafe(F, clist); err != nil {
			return r3.Vec{}, errDecorate(err, "PrincipalAxis")
		}
	}
	if sub.NVecs() < 2 {
		return r3.Vec{}, &Error{"At least 2 vectors are needed for a principal axis", []string{"PrincipalAxis"}, false}
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, sub.Dense, nil)
	var eig mat.EigenSym
	if ok := eig.Factorize(&cov, true); !ok {
		return r3.Vec{}, &Error{string(ErrEigen), []string{"PrincipalAxis"}, true}
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	//gonum returns the eigenvalues in ascending order, the last column
	//is the principal component.
	axis := r3.Vec{X: vecs.At(0, 2), Y: vecs.At(1, 2), Z: vecs.At(2, 2)}
	if n := r3.Norm(axis); n < appzero || math.IsNaN(n) {
		return r3.Vec{}, &Error{string(ErrEigen), []string{"PrincipalAxis"}, true}
	}
	return r3.Unit(axis), nil
}

//Errors

// Error is the error type of this package. It carries a
// list of the functions it went through on its way up.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	return err.message
}

// Decorate adds dec to the decoration list, unless dec is empty,
// and returns the list.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical reports whether the error should be considered fatal.
func (err *Error) Critical() bool { return err.critical }

// errDecorate decorates err with the caller's name if err is one of the
// errors of this package, and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(*Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

// PanicMsg is the type used for all the panics raised in the v3 package.
// Any panic with a message not of this type means a bug.
type PanicMsg string

// Error returns a string with the message of the panic.
func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("closepairs/v3: A v3.Matrix should have 3 columns")
	ErrEigen        = PanicMsg("closepairs/v3: Can't obtain eigenvectors/eigenvalues of given matrix")
	ErrShape        = PanicMsg("closepairs/v3: Dimension mismatch")
	ErrIndexRange   = PanicMsg("closepairs/v3: Vector index out of range")
)

const not3xXMatrix = ErrNotXx3Matrix
