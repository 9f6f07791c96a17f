/*
 * errors.go, part of closepairs.
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

package closepairs

import (
	"fmt"
	"strings"
)

// ConfigError is returned when a parameter or an input is invalid:
// negative or NaN distances or slacks, negative radii, empty clusters,
// non-positive leaf sizes and the like.
type ConfigError struct {
	message string
	deco    []string
}

func newConfigError(caller, format string, args ...interface{}) *ConfigError {
	return &ConfigError{message: fmt.Sprintf(format, args...), deco: []string{caller}}
}

func (err *ConfigError) Error() string {
	return "closepairs: " + err.message
}

// Decorate adds dec to the decoration list, unless dec is empty,
// and returns the list.
func (err *ConfigError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical is always false: the caller can fix the input and try again.
func (err *ConfigError) Critical() bool { return false }

// ConsistencyError signals a broken internal invariant, such as a grid
// cell index outside the grid or a tree node that does not exist. It can
// only mean a bug, so it is raised with panic. ClusterTree.Validate
// returns it instead.
type ConsistencyError struct {
	message string
	deco    []string
}

func (err *ConsistencyError) Error() string {
	return "closepairs: internal inconsistency: " + err.message + " (" + strings.Join(err.deco, " <- ") + ")"
}

func (err *ConsistencyError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *ConsistencyError) Critical() bool { return true }

func inconsistent(caller, format string, args ...interface{}) {
	err := &ConsistencyError{message: fmt.Sprintf(format, args...), deco: []string{caller}}
	Opsf("%v", err)
	panic(err)
}

// errDecorate decorates err with the caller's name if err implements Error,
// and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

// checkNonNegative returns a ConfigError if x is negative or NaN.
func checkNonNegative(caller, name string, x float64) error {
	if x < 0 || x != x {
		return newConfigError(caller, "%s must be a non-negative number, got %v", name, x)
	}
	return nil
}
