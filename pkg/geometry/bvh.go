package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// nodePadding grows node boxes so hits on a box face survive rounding
const nodePadding = 1e-9

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// The build partitions in place, keep the caller's slice intact
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// buildBVH recursively splits shapes at the midpoint of their centres'
// extent along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	centreBounds := core.NewAABBFromPoints(shapes[0].Centre())
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
		centreBounds = centreBounds.Union(core.NewAABBFromPoints(shape.Centre()))
	}
	boundingBox = boundingBox.Expand(nodePadding)

	if len(shapes) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	axis := centreBounds.LongestAxis()
	minVal := core.Component(centreBounds.Min, axis)
	maxVal := core.Component(centreBounds.Max, axis)

	// All centres coincide, nothing to split on
	if maxVal <= minVal {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	left, right := partitionShapes(shapes, axis, (minVal+maxVal)*0.5)
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(left),
		Right:       buildBVH(right),
	}
}

// partitionShapes reorders shapes in place so that those whose centre lies
// below splitPos come first
func partitionShapes(shapes []Shape, axis int, splitPos float64) ([]Shape, []Shape) {
	i := 0
	for j := range shapes {
		if core.Component(shapes[j].Centre(), axis) < splitPos {
			shapes[i], shapes[j] = shapes[j], shapes[i]
			i++
		}
	}
	return shapes[:i], shapes[i:]
}

// Hit returns the nearest intersection along the ray
func (bvh *BVH) Hit(ray core.Ray) (HitRecord, bool) {
	if bvh.Root == nil {
		return HitRecord{}, false
	}
	return bvh.hitNode(bvh.Root, ray)
}

// hitNode narrows the ray's upper bound as closer hits are found
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray) (HitRecord, bool) {
	if !node.BoundingBox.Hit(ray) {
		return HitRecord{}, false
	}

	var closest HitRecord
	hitAnything := false

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, ok := shape.Hit(ray); ok {
				hitAnything = true
				closest = hit
				ray = ray.WithTMax(hit.T)
			}
		}
		return closest, hitAnything
	}

	if node.Left != nil {
		if hit, ok := bvh.hitNode(node.Left, ray); ok {
			hitAnything = true
			closest = hit
			ray = ray.WithTMax(hit.T)
		}
	}
	if node.Right != nil {
		if hit, ok := bvh.hitNode(node.Right, ray); ok {
			hitAnything = true
			closest = hit
		}
	}

	return closest, hitAnything
}

// AnyHit reports whether anything intersects the ray, stopping at the first hit
func (bvh *BVH) AnyHit(ray core.Ray) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.anyHitNode(bvh.Root, ray)
}

func (bvh *BVH) anyHitNode(node *BVHNode, ray core.Ray) bool {
	if !node.BoundingBox.Hit(ray) {
		return false
	}

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, ok := shape.Hit(ray); ok {
				return true
			}
		}
		return false
	}

	return (node.Left != nil && bvh.anyHitNode(node.Left, ray)) ||
		(node.Right != nil && bvh.anyHitNode(node.Right, ray))
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.Root != nil {
		bvh.collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.Shapes != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
