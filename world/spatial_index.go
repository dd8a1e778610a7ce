package world

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// minRectLength pads flat blocks, which rtreego rejects
const minRectLength = 1e-9

// blockEntry wraps a block for R-tree storage
type blockEntry struct {
	index int
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *blockEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// BlockIndex is an R-tree over a world's blocks. Distance queries do not use it; it
// backs the overlap audit.
type BlockIndex struct {
	tree   *rtreego.Rtree
	blocks []Block
}

// NewBlockIndex builds the index over the world's blocks
func NewBlockIndex(w *World) *BlockIndex {
	tree := rtreego.NewTree(3, 25, 50) // 3D, min 25, max 50 entries per node

	for i, b := range w.blocks {
		bbox, err := extentsRect(b.Extents)
		if err == nil {
			tree.Insert(&blockEntry{index: i, bbox: bbox})
		}
	}

	return &BlockIndex{tree: tree, blocks: w.blocks}
}

// QueryRegion returns the indices of blocks whose interior intersects the region,
// in ascending order
func (bi *BlockIndex) QueryRegion(region Extents) []int {
	bbox, err := extentsRect(region)
	if err != nil {
		return []int{}
	}

	results := bi.tree.SearchIntersect(bbox)
	indices := make([]int, 0, len(results))
	for _, item := range results {
		entry := item.(*blockEntry)
		if bi.blocks[entry.index].Extents.Overlaps(region) {
			indices = append(indices, entry.index)
		}
	}
	sort.Ints(indices)
	return indices
}

// OverlappingBlocks lists every pair of blocks whose interiors intersect, as
// index pairs i < j sorted by i then j. Touching faces are not overlaps.
func (w *World) OverlappingBlocks() [][2]int {
	bi := NewBlockIndex(w)
	pairs := make([][2]int, 0)
	for i, b := range w.blocks {
		for _, j := range bi.QueryRegion(b.Extents) {
			if j > i {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// extentsRect converts extents to an R-tree rectangle
func extentsRect(e Extents) (rtreego.Rect, error) {
	size := e.Size()
	return rtreego.NewRect(
		rtreego.Point{e.XMin, e.YMin, e.ZMin},
		[]float64{pad(size.X), pad(size.Y), pad(size.Z)},
	)
}

func pad(l float64) float64 {
	if l < minRectLength {
		return minRectLength
	}
	return l
}
