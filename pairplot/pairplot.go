/*
 * pairplot.go, part of closepairs
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

// Package pairplot draws diagnostic plots for close-pair searches: how the
// grid finder splits a set of spheres by radius, and how far apart the
// spheres of the pairs found are.
package pairplot

import (
	"fmt"
	"image/color"
	"io"

	closepairs "github.com/salilab/imp-sub003"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// StrataPlot returns a bar chart with the number of spheres in each of the
// strata in info, as given by closepairs.Strata. Bars are labeled with the
// radius bound of their stratum.
func StrataPlot(info []closepairs.StratumInfo, title string) (*plot.Plot, error) {
	if len(info) == 0 {
		return nil, fmt.Errorf("pairplot: StrataPlot: no strata given")
	}
	p := basicPlot(title, "Radius bound", "Spheres")
	counts := make(plotter.Values, len(info))
	names := make([]string, len(info))
	for i, v := range info {
		counts[i] = float64(v.Count)
		names[i] = fmt.Sprintf("%.3g", v.Bound)
	}
	bars, err := plotter.NewBarChart(counts, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("pairplot: StrataPlot: %w", err)
	}
	bars.Color = color.RGBA{R: 70, G: 110, B: 180, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// PairDistances returns the surface distance of each pair in P. Every ID
// in P must be in src.
func PairDistances(P closepairs.Pairs, src closepairs.SphereSource) (plotter.Values, error) {
	ret := make(plotter.Values, 0, len(P))
	for _, v := range P {
		a, oka := src.Sphere(v.A)
		b, okb := src.Sphere(v.B)
		if !oka || !okb {
			return nil, fmt.Errorf("pairplot: PairDistances: pair %v refers to a sphere that is not in the source", v)
		}
		ret = append(ret, closepairs.SurfaceDistance(a, b))
	}
	return ret, nil
}

// DistanceHistogram returns a histogram, with the given number of bins, of
// the surface distances of the pairs in P.
func DistanceHistogram(P closepairs.Pairs, src closepairs.SphereSource, bins int, title string) (*plot.Plot, error) {
	if len(P) == 0 {
		return nil, fmt.Errorf("pairplot: DistanceHistogram: no pairs given")
	}
	d, err := PairDistances(P, src)
	if err != nil {
		return nil, err
	}
	p := basicPlot(title, "Surface distance", "Pairs")
	h, err := plotter.NewHist(d, bins)
	if err != nil {
		return nil, fmt.Errorf("pairplot: DistanceHistogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 180, G: 90, B: 60, A: 255}
	p.Add(h)
	return p, nil
}

// Save writes p to the file name, with the format given by the extension
// (png, svg, pdf...), 4 by 4 inches.
func Save(p *plot.Plot, name string) error {
	return p.Save(4*vg.Inch, 4*vg.Inch, name)
}

// Write writes p to w in the given format, 4 by 4 inches.
func Write(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(4*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
