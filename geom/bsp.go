package geom

import "math"

// Classification is the result of testing a point against a SolidBSP.
type Classification int

const (
	InEmptySpace Classification = iota
	InSolidSpace
	OnBoundary
)

func (c Classification) String() string {
	switch c {
	case InSolidSpace:
		return "in_solid"
	case OnBoundary:
		return "on_boundary"
	default:
		return "in_empty"
	}
}

// SolidBSP partitions a segment set into a binary space partition tree.
// Points are classified in-solid/in-empty/on-boundary relative to the
// "solid" side convention: a segment's solid side is the left half-plane
// of its directed A->B line (so a CCW-wound boundary polygon has its
// interior as the solid side, matching the usual planar winding
// convention). Built once, immutable thereafter, safe for concurrent
// readers without locking.
type SolidBSP struct {
	segments []Segment2
	tol      Tolerance
	root     *bspNode
}

type bspNode struct {
	splitter    Segment2
	splitterIdx int
	solid       *bspNode
	empty       *bspNode
	leaf        bool
	leafClass   Classification
}

// NewSolidBSP builds a partition tree over segments using a scored
// selector policy: at each node, score every remaining candidate splitter
// by a weighted sum of straddle count and left/right imbalance, pick the
// minimum, and break ties by the lowest input index. Grounded on the
// splitter-scoring idea in VigilantDoomer's BSP node-builder (score
// candidates, tie-break by stable order) adapted to this module's solid/
// empty semantics rather than Doom map geometry.
func NewSolidBSP(segments []Segment2, tol Tolerance) *SolidBSP {
	idxs := make([]int, len(segments))
	for i := range segments {
		idxs[i] = i
	}
	bsp := &SolidBSP{segments: segments, tol: tol}
	bsp.root = buildBSPNode(segments, idxs, tol)
	return bsp
}

// Classify reports whether p lies in solid space, empty space, or exactly
// on the boundary described by the segment set.
func (b *SolidBSP) Classify(p Point2, tol Tolerance) Classification {
	for _, seg := range b.segments {
		if onSegment(p, seg, tol) {
			return OnBoundary
		}
	}
	if b.root == nil {
		return InEmptySpace
	}
	return b.root.classify(p, tol)
}

func (n *bspNode) classify(p Point2, tol Tolerance) Classification {
	if n.leaf {
		return n.leafClass
	}
	side := orientation(n.splitter.A, n.splitter.B, p)
	if tol.Sign(side) >= 0 {
		return n.solid.classify(p, tol)
	}
	return n.empty.classify(p, tol)
}

// MinDistanceSqrdToSolid returns the minimum squared Euclidean distance
// from p to any input segment, regardless of p's classification, along
// with the index of the nearest segment into the original input array.
// This is a direct nearest-point-on-segment scan rather than a
// BSP-accelerated query: it is always exactly correct against the
// invariant in spec.md §8, and the BSP tree's role in this module is to
// accelerate Classify, not distance queries.
func (b *SolidBSP) MinDistanceSqrdToSolid(p Point2, tol Tolerance) (float64, int) {
	best := math.Inf(1)
	bestIdx := -1
	for i, seg := range b.segments {
		d2 := distanceSqrdPointSegment(p, seg)
		if d2 < best {
			best = d2
			bestIdx = i
		}
	}
	return best, bestIdx
}

func distanceSqrdPointSegment(p Point2, s Segment2) float64 {
	ax, ay := s.A.X, s.A.Y
	bx, by := s.B.X, s.B.Y
	dx, dy := bx-ax, by-ay
	length2 := dx*dx + dy*dy
	if length2 == 0 {
		return p.DistanceSqrd(s.A)
	}
	t := ((p.X-ax)*dx + (p.Y-ay)*dy) / length2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point2{X: ax + t*dx, Y: ay + t*dy}
	return p.DistanceSqrd(proj)
}

func buildBSPNode(segs []Segment2, idxs []int, tol Tolerance) *bspNode {
	if len(idxs) == 0 {
		return &bspNode{leaf: true, leafClass: InEmptySpace}
	}

	best := pickSplitter(segs, idxs, tol)
	splitter := segs[best]

	var solidIdxs, emptyIdxs []int
	for _, idx := range idxs {
		if idx == best {
			continue
		}
		switch sideOf(segs[idx], splitter, tol) {
		case -1:
			solidIdxs = append(solidIdxs, idx)
		case 1:
			emptyIdxs = append(emptyIdxs, idx)
		default:
			solidIdxs = append(solidIdxs, idx)
			emptyIdxs = append(emptyIdxs, idx)
		}
	}

	node := &bspNode{splitter: splitter, splitterIdx: best}
	if len(solidIdxs) == 0 {
		node.solid = &bspNode{leaf: true, leafClass: InSolidSpace}
	} else {
		node.solid = buildBSPNode(segs, solidIdxs, tol)
	}
	if len(emptyIdxs) == 0 {
		node.empty = &bspNode{leaf: true, leafClass: InEmptySpace}
	} else {
		node.empty = buildBSPNode(segs, emptyIdxs, tol)
	}
	return node
}

// pickSplitter scores each candidate by straddle count plus left/right
// imbalance among the remaining segments and returns the input index of
// the minimum-score candidate, ties broken toward the lowest index.
func pickSplitter(segs []Segment2, idxs []int, tol Tolerance) int {
	const straddleWeight = 8.0
	const imbalanceWeight = 1.0

	bestIdx := idxs[0]
	bestScore := math.Inf(1)
	for _, cand := range idxs {
		splitter := segs[cand]
		var solidCount, emptyCount, straddleCount int
		for _, other := range idxs {
			if other == cand {
				continue
			}
			switch sideOf(segs[other], splitter, tol) {
			case -1:
				solidCount++
			case 1:
				emptyCount++
			default:
				straddleCount++
			}
		}
		imbalance := math.Abs(float64(solidCount - emptyCount))
		score := straddleWeight*float64(straddleCount) + imbalanceWeight*imbalance
		if score < bestScore {
			bestScore = score
			bestIdx = cand
		}
	}
	return bestIdx
}

// sideOf classifies seg relative to splitter's directed line: -1 if seg
// lies entirely on the solid (left) side, 1 if entirely on the empty
// (right) side, 0 if seg straddles the line.
func sideOf(seg, splitter Segment2, tol Tolerance) int {
	sa := tol.Sign(orientation(splitter.A, splitter.B, seg.A))
	sb := tol.Sign(orientation(splitter.A, splitter.B, seg.B))
	switch {
	case sa >= 0 && sb >= 0:
		return -1
	case sa <= 0 && sb <= 0:
		return 1
	default:
		return 0
	}
}
