/*
 * log.go, part of closepairs.
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
	"io"
	"log"
	"sync"
)

// LogWriters are the destinations of the three log streams. A nil
// writer turns its stream off.
type LogWriters struct {
	Ops   io.Writer //errors the caller should act on
	Diag  io.Writer //rebuilds, strata, tuning
	Trace io.Writer //per cell and per query detail
}

type logStream int

const (
	opsStream logStream = iota
	diagStream
	traceStream
	nstreams
)

var (
	logMu   sync.RWMutex
	loggers [nstreams]*log.Logger
)

// SetLogWriters replaces the three streams. All of them start off.
func SetLogWriters(w LogWriters) {
	logMu.Lock()
	defer logMu.Unlock()
	for i, out := range [nstreams]io.Writer{w.Ops, w.Diag, w.Trace} {
		loggers[i] = nil
		if out != nil {
			loggers[i] = log.New(out, "[closepairs] ", log.LstdFlags|log.Lmicroseconds)
		}
	}
}

func logger(s logStream) *log.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return loggers[s]
}

func logf(s logStream, format string, args ...interface{}) {
	if l := logger(s); l != nil {
		l.Printf(format, args...)
	}
}

// Opsf logs to the ops stream.
func Opsf(format string, args ...interface{}) { logf(opsStream, format, args...) }

// Diagf logs to the diag stream.
func Diagf(format string, args ...interface{}) { logf(diagStream, format, args...) }

// Tracef logs to the trace stream.
func Tracef(format string, args ...interface{}) { logf(traceStream, format, args...) }

// tracing tells whether the trace stream is on, so hot loops can skip
// building their arguments.
func tracing() bool {
	return logger(traceStream) != nil
}
