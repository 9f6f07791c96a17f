/*
 * xyzr.go, part of closepairs.
 *
 * Copyright 2021 Raul Mera <rauldotmeraatusachdotcl>
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

package xyzr

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	closepairs "github.com/salilab/imp-sub003"
	"gonum.org/v1/gonum/spatial/r3"
)

const defaultPrec = 3

// Compression is the compression applied to an xyzr stream.
type Compression int

const (
	Plain Compression = iota
	Gzip
	Zstd
)

// CompressionFor returns the compression that goes with the file name.
func CompressionFor(name string) Compression {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		return Zstd
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		return Gzip
	default:
		return Plain
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// zstdReadCloser makes a *zstd.Decoder an io.ReadCloser, as its
// Close returns nothing.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//Write!

// Writer writes frames of spheres.
type Writer struct {
	f         io.Closer
	h         io.WriteCloser
	w         *bufio.Writer
	n         int
	name      string
	prec      int
	writeable bool
}

// NewWriter creates the file name and writes the header to it. Every frame
// will have n spheres. The compression is chosen from the file name.
func NewWriter(name string, n int, header map[string]string) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, &Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	W, err := NewStreamWriter(f, CompressionFor(name), n, header)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, "NewWriter")
	}
	W.f = f
	W.name = name
	return W, nil
}

// NewStreamWriter writes the header to w and returns a Writer for the
// frames. Closing the Writer does not close w.
func NewStreamWriter(w io.Writer, c Compression, n int, header map[string]string) (*Writer, error) {
	if n < 0 {
		return nil, &Error{fmt.Sprintf("negative number of spheres %d", n), "", []string{"NewStreamWriter"}, true}
	}
	W := &Writer{n: n, prec: defaultPrec}
	var err error
	switch c {
	case Zstd:
		W.h, err = zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case Gzip:
		W.h = gzip.NewWriter(w)
	default:
		W.h = nopWriteCloser{w}
	}
	if err != nil {
		return nil, &Error{"can't start the compressor: " + err.Error(), "", []string{"NewStreamWriter"}, true}
	}
	W.w = bufio.NewWriter(W.h)
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 0 || prec > 9 {
			return nil, &Error{fmt.Sprintf("invalid precision %q", p), "", []string{"NewStreamWriter"}, true}
		}
		W.prec = prec
	}
	keys := make([]string, 0, len(header)+1)
	for k := range header {
		if strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") || strings.HasPrefix(k, "*") {
			return nil, &Error{fmt.Sprintf("invalid header entry %q", k), "", []string{"NewStreamWriter"}, true}
		}
		keys = append(keys, k)
	}
	if _, ok := header["prec"]; !ok {
		keys = append(keys, "prec")
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := header[k]
		if k == "prec" {
			v = strconv.Itoa(W.prec)
		}
		fmt.Fprintf(W.w, "%s=%s\n", k, v)
	}
	fmt.Fprintf(W.w, "** %d\n", n)
	W.writeable = true
	return W, nil
}

// Len returns the number of spheres per frame.
func (W *Writer) Len() int {
	return W.n
}

// WNext writes a frame with the spheres in s, and the periodic cell, if given.
func (W *Writer) WNext(s []closepairs.Sphere, cell ...r3.Box) error {
	if !W.writeable {
		return &Error{TrajUnIniWrite, W.name, []string{"WNext"}, true}
	}
	if len(s) != W.n {
		return &Error{fmt.Sprintf("%d spheres given, but %d expected", len(s), W.n), W.name, []string{"WNext"}, true}
	}
	p := math.Pow(10, float64(W.prec))
	for _, v := range s {
		fmt.Fprintf(W.w, "%d %s\n", v.ID, encode(p, v.Center.X, v.Center.Y, v.Center.Z, v.Radius))
	}
	if len(cell) > 0 {
		b := cell[0]
		fmt.Fprintf(W.w, "* %s\n", strings.Join(formatFloats(b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z), " "))
	} else {
		W.w.WriteString("*\n")
	}
	if err := W.w.Flush(); err != nil {
		return &Error{err.Error(), W.name, []string{"WNext"}, true}
	}
	return nil
}

// Close flushes the stream and, if the Writer created a file, closes it.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.w.Flush()
	if err2 := W.h.Close(); err == nil {
		err = err2
	}
	if W.f != nil {
		if err2 := W.f.Close(); err == nil {
			err = err2
		}
	}
	if err != nil {
		return &Error{err.Error(), W.name, []string{"Close"}, true}
	}
	return nil
}

func encode(p float64, x ...float64) string {
	s := make([]string, len(x))
	for i, v := range x {
		s[i] = strconv.FormatInt(int64(math.RoundToEven(v*p)), 10)
	}
	return strings.Join(s, " ")
}

func formatFloats(x ...float64) []string {
	s := make([]string, len(x))
	for i, v := range x {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return s
}

//Read!

// Reader reads frames of spheres.
type Reader struct {
	f        io.Closer
	z        io.ReadCloser
	h        *bufio.Reader
	n        int
	name     string
	prec     int
	readable bool
}

// New opens the file name for reading, and returns the Reader and the
// header of the file.
func New(name string) (*Reader, map[string]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, &Error{err.Error(), name, []string{"New"}, true}
	}
	R, m, err := NewStreamReader(f, CompressionFor(name))
	if err != nil {
		f.Close()
		if e, ok := err.(*Error); ok {
			e.filename = name
		}
		return nil, nil, errDecorate(err, "New")
	}
	R.f = f
	R.name = name
	return R, m, nil
}

// NewStreamReader reads the header from r and returns a Reader for the
// frames, and the header. Closing the Reader does not close r.
func NewStreamReader(r io.Reader, c Compression) (*Reader, map[string]string, error) {
	R := &Reader{n: -1, prec: defaultPrec}
	switch c {
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, &Error{"can't start the decompressor: " + err.Error(), "", []string{"NewStreamReader"}, true}
		}
		R.z = zstdReadCloser{d}
	case Gzip:
		g, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, &Error{"can't start the decompressor: " + err.Error(), "", []string{"NewStreamReader"}, true}
		}
		R.z = g
	default:
		R.z = io.NopCloser(r)
	}
	R.h = bufio.NewReader(R.z)
	m := make(map[string]string)
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.z.Close()
			return nil, nil, &Error{"can't read header: " + err.Error(), "", []string{"NewStreamReader"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			fields := strings.Fields(str)
			if len(fields) < 2 {
				R.z.Close()
				return nil, nil, &Error{fmt.Sprintf("can't read the number of spheres from '%s'", str), "", []string{"NewStreamReader"}, true}
			}
			R.n, err = strconv.Atoi(fields[1])
			if err != nil || R.n < 0 {
				R.z.Close()
				return nil, nil, &Error{fmt.Sprintf("can't read the number of spheres from '%s'", str), "", []string{"NewStreamReader"}, true}
			}
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			R.z.Close()
			return nil, nil, &Error{fmt.Sprintf("malformed header line '%s'", str), "", []string{"NewStreamReader"}, true}
		}
		m[k] = v
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 0 || prec > 9 {
			R.z.Close()
			return nil, nil, &Error{fmt.Sprintf("invalid precision %q", p), "", []string{"NewStreamReader"}, true}
		}
		R.prec = prec
	}
	R.readable = true
	return R, m, nil
}

// Readable returns true if Next can be called on the Reader.
func (R *Reader) Readable() bool {
	return R.readable
}

// Len returns the number of spheres per frame.
func (R *Reader) Len() int {
	return R.n
}

// Next reads the next frame, appending its spheres to out, which may be
// nil, and returns the result. If the frame carries a periodic cell and
// cell is given, the cell is put there. At the end of the stream Next
// returns a *LastFrameError, which is not an actual error.
func (R *Reader) Next(out []closepairs.Sphere, cell ...*r3.Box) ([]closepairs.Sphere, error) {
	if !R.readable {
		return out, &Error{TrajUnIniRead, R.name, []string{"Next"}, true}
	}
	p := math.Pow(10, float64(R.prec))
	var fields [5]int64
	for i := 0; i < R.n; i++ {
		str, err := R.h.ReadString('\n')
		if err == io.EOF && i == 0 && str == "" {
			R.Close()
			return out, &LastFrameError{R.name, []string{"Next"}}
		}
		if err != nil && !(err == io.EOF && str != "") {
			return out, &Error{ReadError + ": " + err.Error(), R.name, []string{"Next"}, true}
		}
		if err := decode(str, &fields); err != nil {
			return out, &Error{err.Error(), R.name, []string{"Next"}, true}
		}
		out = append(out, closepairs.Sphere{
			ID:     int(fields[0]),
			Center: r3.Vec{X: float64(fields[1]) / p, Y: float64(fields[2]) / p, Z: float64(fields[3]) / p},
			Radius: float64(fields[4]) / p,
		})
	}
	str, err := R.h.ReadString('\n')
	if err == io.EOF && str == "" && R.n == 0 {
		R.Close()
		return out, &LastFrameError{R.name, []string{"Next"}}
	}
	if err != nil && !(err == io.EOF && str != "") {
		return out, &Error{"can't read the end of the frame: " + err.Error(), R.name, []string{"Next"}, true}
	}
	if !strings.HasPrefix(str, "*") {
		return out, &Error{WrongFormat + ": a frame has more spheres than the header says", R.name, []string{"Next"}, true}
	}
	fields2 := strings.Fields(str)[1:]
	if len(fields2) == 0 || len(cell) == 0 || cell[0] == nil {
		return out, nil
	}
	if len(fields2) != 6 {
		return out, &Error{fmt.Sprintf("%s: the cell needs 6 numbers, got %d", WrongFormat, len(fields2)), R.name, []string{"Next"}, true}
	}
	var b [6]float64
	for i, v := range fields2 {
		b[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return out, &Error{fmt.Sprintf("%s: can't parse the cell: %s", WrongFormat, err), R.name, []string{"Next"}, true}
		}
	}
	*cell[0] = r3.Box{Min: r3.Vec{X: b[0], Y: b[1], Z: b[2]}, Max: r3.Vec{X: b[3], Y: b[4], Z: b[5]}}
	return out, nil
}

func decode(str string, fields *[5]int64) error {
	s := strings.Fields(str)
	if len(s) != 5 {
		return fmt.Errorf("%s: a sphere line needs 5 fields, got %d: '%s'", WrongFormat, len(s), strings.TrimSpace(str))
	}
	for i, v := range s {
		f, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: can't parse field %d (%s): %s", WrongFormat, i, v, err)
		}
		fields[i] = f
	}
	return nil
}

// Close closes the Reader and, if it opened a file, the file.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.readable = false
	R.z.Close()
	if R.f != nil {
		R.f.Close()
	}
}

// ReadSet reads the first frame of the file name into a new SphereSet.
func ReadSet(name string) (*closepairs.SphereSet, error) {
	R, _, err := New(name)
	if err != nil {
		return nil, errDecorate(err, "ReadSet")
	}
	defer R.Close()
	s, err := R.Next(nil)
	if err != nil {
		return nil, errDecorate(err, "ReadSet")
	}
	S, err := closepairs.NewSphereSet(s...)
	if err != nil {
		return nil, &Error{err.Error(), name, []string{"ReadSet"}, true}
	}
	return S, nil
}

// WriteSet writes all the spheres of src, cluster members included, as a
// single frame in the file name.
func WriteSet(name string, src closepairs.SphereSource, header map[string]string) error {
	s := src.Spheres()
	W, err := NewWriter(name, len(s), header)
	if err != nil {
		return errDecorate(err, "WriteSet")
	}
	if err := W.WNext(s); err != nil {
		W.Close()
		return errDecorate(err, "WriteSet")
	}
	return errDecorate(W.Close(), "WriteSet")
}

//Errors

// Error is the general structure for xyzr errors. It implements closepairs.Error.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("xyzr error: %s", err.message)
	}
	return fmt.Sprintf("xyzr file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing stream was associated
func (err *Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "xyzr object uninitialized to read"
	TrajUnIniWrite = "xyzr object uninitialized to write"
	ReadError      = "error reading frame"
	WrongFormat    = "wrong format in the xyzr file or frame"
)

// LastFrameError is returned by Next when there are no more frames.
type LastFrameError struct {
	filename string
	deco     []string
}

func (err *LastFrameError) Error() string { return "EOF" }

func (err *LastFrameError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *LastFrameError) FileName() string { return err.filename }

func (err *LastFrameError) Critical() bool { return false }

// NormalLastFrameTermination does nothing. It marks the error as the
// normal end of a stream.
func (err *LastFrameError) NormalLastFrameTermination() {}

// errDecorate decorates err with the caller's name if err implements
// closepairs.Error, and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(closepairs.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
