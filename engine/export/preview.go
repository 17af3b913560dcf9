package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/region"
	"github.com/memmaker/voxedit/engine/voxel"
)

// RenderTopDown draws the highest non-air block of every column in r, one
// pixel per block scaled up by scale. X runs right and Z runs down.
// Columns without blocks stay transparent.
func RenderTopDown(extent voxel.BlockReader, r region.Region, colors ColorFunc, scale int) *image.NRGBA {
	if colors == nil {
		colors = DefaultColors
	}
	if scale < 1 {
		scale = 1
	}
	lo := r.GetMinimumPoint()
	width, length := r.GetWidth(), r.GetLength()
	small := image.NewNRGBA(image.Rect(0, 0, width, length))
	topY := make(map[[2]int]int, width*length)
	r.Iterate(func(pt geom.Vector) bool {
		block := extent.GetBlock(pt)
		if block.IsAir() {
			return true
		}
		column := [2]int{pt.BlockX() - lo.BlockX(), pt.BlockZ() - lo.BlockZ()}
		if y, seen := topY[column]; seen && y > pt.BlockY() {
			return true
		}
		topY[column] = pt.BlockY()
		c := colors(block)
		small.SetNRGBA(column[0], column[1], color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
		return true
	})
	if scale == 1 {
		return small
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, width*scale, length*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), small, small.Bounds(), draw.Src, nil)
	return scaled
}

func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "encode png")
}
