package monitor

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/bulksolvent/internal/fsutil"
	"github.com/banshee-data/bulksolvent/internal/masks"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Section values drawn for each cell of the ASU grid.
const (
	levelExcluded  = 0
	levelTentative = 1
	levelMark      = 2
	levelSolvent   = 3
)

// SectionPlotter writes z-sections of mask grids as heat maps.
type SectionPlotter struct {
	fs        fsutil.FileSystem
	outputDir string
	label     string

	Width  vg.Length
	Height vg.Length
	// Format is any format gonum/plot can write, such as "png" or "svg".
	Format string
}

// NewSectionPlotter creates a plotter that writes into outputDir on fsys.
func NewSectionPlotter(fsys fsutil.FileSystem, outputDir string) *SectionPlotter {
	return &SectionPlotter{
		fs:        fsys,
		outputDir: outputDir,
		Width:     6 * vg.Inch,
		Height:    6 * vg.Inch,
		Format:    "png",
	}
}

// WithLabel prefixes every file name with label, for example the space group
// or structure name of the run.
func (sp *SectionPlotter) WithLabel(label string) *SectionPlotter {
	sp.label = label
	return sp
}

// asuSection exposes one z-section of the cell states as a plotter.GridXYZ.
type asuSection struct {
	grid *masks.Grid
	z    int
}

func (s asuSection) Dims() (c, r int) { return s.grid.N[0], s.grid.N[1] }
func (s asuSection) X(c int) float64  { return float64(c) / float64(s.grid.N[0]) }
func (s asuSection) Y(r int) float64  { return float64(r) / float64(s.grid.N[1]) }

func (s asuSection) Z(c, r int) float64 {
	cell := s.grid.At([3]int{c, r, s.z})
	switch {
	case cell.IsSolvent():
		return levelSolvent
	case cell.IsMark():
		return levelMark
	case cell.State == masks.Tentative:
		return levelTentative
	}
	return levelExcluded
}

// cellSection exposes one z-section of the expanded 0/1 cell mask.
type cellSection struct {
	n    [3]int
	mask []float64
	z    int
}

func (s cellSection) Dims() (c, r int) { return s.n[0], s.n[1] }
func (s cellSection) X(c int) float64  { return float64(c) / float64(s.n[0]) }
func (s cellSection) Y(r int) float64  { return float64(r) / float64(s.n[1]) }
func (s cellSection) Z(c, r int) float64 {
	return s.mask[(c*s.n[1]+r)*s.n[2]+s.z]
}

// PlotASUSection draws section z of the ASU grid of m, distinguishing owned
// solvent, marks, tentative and excluded cells. It returns the written path.
func (sp *SectionPlotter) PlotASUSection(m *masks.AtomMask, z int) (string, error) {
	g := m.Grid()
	if z < 0 || z >= g.N[2] {
		return "", fmt.Errorf("section z=%d outside grid %v", z, g.N)
	}
	hm := plotter.NewHeatMap(asuSection{grid: g, z: z}, palette.Heat(4, 1))
	hm.Min, hm.Max = levelExcluded, levelSolvent

	name := sectionFilename(sp.label, "asu", z, sp.Format)
	title := fmt.Sprintf("ASU grid, z = %d/%d", z, g.N[2])
	return sp.save(hm, title, name)
}

// PlotCellSection draws section z of the symmetry-expanded solvent mask of m.
func (sp *SectionPlotter) PlotCellSection(m *masks.AtomMask, z int) (string, error) {
	g := m.Grid()
	if z < 0 || z >= g.N[2] {
		return "", fmt.Errorf("section z=%d outside grid %v", z, g.N)
	}
	hm := plotter.NewHeatMap(cellSection{n: g.N, mask: m.FullCellMask(), z: z}, palette.Heat(2, 1))
	hm.Min, hm.Max = 0, 1

	name := sectionFilename(sp.label, "cell", z, sp.Format)
	title := fmt.Sprintf("Solvent mask, z = %d/%d", z, g.N[2])
	return sp.save(hm, title, name)
}

// PlotSections draws ASU and cell sections for every z in zs and returns the
// number of files written.
func (sp *SectionPlotter) PlotSections(m *masks.AtomMask, zs []int) (int, error) {
	count := 0
	for _, z := range zs {
		if _, err := sp.PlotASUSection(m, z); err != nil {
			return count, err
		}
		count++
		if _, err := sp.PlotCellSection(m, z); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (sp *SectionPlotter) save(hm *plotter.HeatMap, title, name string) (string, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (fractional)"
	p.Y.Label.Text = "y (fractional)"
	p.Add(hm)

	if err := sp.fs.MkdirAll(sp.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	wt, err := p.WriterTo(sp.Width, sp.Height, sp.Format)
	if err != nil {
		opsf("render %s failed: %v", name, err)
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	path := filepath.Join(sp.outputDir, name)
	f, err := sp.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	diagf("wrote %s", path)
	return path, nil
}
