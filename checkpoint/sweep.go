// SPDX-License-Identifier: MIT

package checkpoint

import (
	"fmt"
	"iter"
)

// Point identifies one saved state of a run.
type Point struct {
	Index  int // position in the sweep
	Epoch  int // zero-based epoch the state was saved in
	Images int // images seen within that epoch
}

// Sweep is the finite sequence of checkpoint points of a run:
// index 0 is the untrained state (0, 0); index k ≥ 1 is the state after
// ((k−1) mod nb + 1)·perImages images of epoch (k−1)/nb, where
// nb = datasetSize/perImages.
type Sweep struct {
	epochs    int
	perImages int
	nb        int
}

// NewSweep validates the run shape.
func NewSweep(epochs, datasetSize, perImages int) (Sweep, error) {
	if epochs <= 0 || datasetSize <= 0 || perImages <= 0 || datasetSize < perImages {
		return Sweep{}, fmt.Errorf("epochs=%d size=%d per=%d: %w", epochs, datasetSize, perImages, ErrInvalidSweep)
	}

	return Sweep{epochs: epochs, perImages: perImages, nb: datasetSize / perImages}, nil
}

// Len returns epochs·nb + 1.
func (s Sweep) Len() int { return s.epochs*s.nb + 1 }

// PerEpoch returns nb, the number of checkpoints saved per epoch.
func (s Sweep) PerEpoch() int { return s.nb }

// PerImages returns the number of training images between two checkpoints.
func (s Sweep) PerImages() int { return s.perImages }

// Epochs returns the number of training epochs the sweep covers.
func (s Sweep) Epochs() int { return s.epochs }

// At returns point k.
func (s Sweep) At(k int) (Point, error) {
	if k < 0 || k >= s.Len() {
		return Point{}, fmt.Errorf("point %d: %w", k, ErrPointIndex)
	}
	if k == 0 {
		return Point{}, nil
	}

	return Point{
		Index:  k,
		Epoch:  (k - 1) / s.nb,
		Images: ((k-1)%s.nb + 1) * s.perImages,
	}, nil
}

// EpochFraction returns k/nb, the training progress of point k in epochs.
func (s Sweep) EpochFraction(k int) float64 {
	return float64(k) / float64(s.nb)
}

// ImagesSeen returns k·perImages, the training images behind point k counted
// from the start of the run.
func (s Sweep) ImagesSeen(k int) int {
	return k * s.perImages
}

// PointFor returns the point saved after images images of epoch epoch.
// images must be a positive multiple of perImages no larger than
// PerEpoch()·PerImages(), or zero together with epoch zero.
func (s Sweep) PointFor(epoch, images int) (Point, error) {
	if epoch == 0 && images == 0 {
		return Point{}, nil
	}
	if images <= 0 || images%s.perImages != 0 || images/s.perImages > s.nb {
		return Point{}, fmt.Errorf("epoch %d images %d: %w", epoch, images, ErrPointIndex)
	}

	return s.At(epoch*s.nb + images/s.perImages)
}

// From yields the points k, k+1, ..., Len()-1. A negative k starts at 0 and
// k ≥ Len() yields nothing, so a finished run resumes to an empty sequence.
func (s Sweep) From(k int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i := max(k, 0); i < s.Len(); i++ {
			p, _ := s.At(i)
			if !yield(p) {
				return
			}
		}
	}
}

// All yields every point of the sweep.
func (s Sweep) All() iter.Seq[Point] { return s.From(0) }
