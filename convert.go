// ◄◄◄ convert.go ►►►
// Copyright © 2024 Marc Lagacé

// Functions converting between Go image types and the engine's sample rows.

package earesize

import "image"

// imageRows adapts an image.Image to the engine's RowReader: each call
// produces one row of 16-bit unassociated-alpha RGBA samples.
//
// The underlying image type is tested once, so that the common in-memory
// formats avoid the color.Color interface on every pixel.
type imageRows struct {
	srcImage  image.Image
	srcBounds image.Rectangle
	w         int
	y         int // next row to produce, relative to srcBounds

	srcAsNRGBA   *image.NRGBA
	srcAsNRGBA64 *image.NRGBA64
	srcAsRGBA    *image.RGBA
}

func newImageRows(srcImg image.Image) *imageRows {
	ir := new(imageRows)
	ir.srcImage = srcImg
	ir.srcBounds = srcImg.Bounds()
	ir.w = ir.srcBounds.Dx()

	ir.srcAsNRGBA, _ = srcImg.(*image.NRGBA)
	ir.srcAsNRGBA64, _ = srcImg.(*image.NRGBA64)
	ir.srcAsRGBA, _ = srcImg.(*image.RGBA)
	return ir
}

func (ir *imageRows) ReadRow(dst []uint16) error {
	switch {
	case ir.srcAsNRGBA != nil:
		ir.readRowNRGBA(dst)
	case ir.srcAsNRGBA64 != nil:
		ir.readRowNRGBA64(dst)
	case ir.srcAsRGBA != nil:
		ir.readRowRGBA(dst)
	default:
		ir.readRowGeneric(dst)
	}
	ir.y++
	return nil
}

func (ir *imageRows) readRowNRGBA(dst []uint16) {
	im := ir.srcAsNRGBA
	off := im.PixOffset(ir.srcBounds.Min.X, ir.srcBounds.Min.Y+ir.y)
	row := im.Pix[off : off+4*ir.w]
	for s, v := range row {
		dst[s] = uint16(v) * 0x101
	}
}

func (ir *imageRows) readRowNRGBA64(dst []uint16) {
	im := ir.srcAsNRGBA64
	off := im.PixOffset(ir.srcBounds.Min.X, ir.srcBounds.Min.Y+ir.y)
	row := im.Pix[off : off+8*ir.w]
	for s := range dst {
		dst[s] = uint16(row[2*s])<<8 | uint16(row[2*s+1])
	}
}

func (ir *imageRows) readRowRGBA(dst []uint16) {
	im := ir.srcAsRGBA
	off := im.PixOffset(ir.srcBounds.Min.X, ir.srcBounds.Min.Y+ir.y)
	for i := 0; i < ir.w; i++ {
		sam := im.Pix[off+4*i : off+4*i+4]
		a := uint32(sam[3])
		if a == 0 {
			dst[4*i], dst[4*i+1], dst[4*i+2], dst[4*i+3] = 0, 0, 0, 0
			continue
		}
		// Convert from associated to unassociated alpha.
		for k := 0; k < 3; k++ {
			dst[4*i+k] = uint16(uint32(sam[k]) * 0xffff / a)
		}
		dst[4*i+3] = uint16(a) * 0x101
	}
}

func (ir *imageRows) readRowGeneric(dst []uint16) {
	for i := 0; i < ir.w; i++ {
		srcclr := ir.srcImage.At(ir.srcBounds.Min.X+i, ir.srcBounds.Min.Y+ir.y)
		r, g, b, a := srcclr.RGBA()
		if a == 0 {
			dst[4*i], dst[4*i+1], dst[4*i+2], dst[4*i+3] = 0, 0, 0, 0
			continue
		}
		dst[4*i] = uint16(r * 0xffff / a)
		dst[4*i+1] = uint16(g * 0xffff / a)
		dst[4*i+2] = uint16(b * 0xffff / a)
		dst[4*i+3] = uint16(a)
	}
}

// nrgba64Rows collects engine output rows into an NRGBA64 image.
type nrgba64Rows struct {
	im *image.NRGBA64
	y  int
}

func (w *nrgba64Rows) WriteRow(src []uint16) error {
	off := w.im.PixOffset(0, w.y)
	row := w.im.Pix[off : off+2*len(src)]
	for s, v := range src {
		row[2*s] = uint8(v >> 8)
		row[2*s+1] = uint8(v)
	}
	w.y++
	return nil
}

// nrgbaRows collects engine output rows into an NRGBA image, narrowing the
// 16-bit samples with rounding.
type nrgbaRows struct {
	im *image.NRGBA
	y  int
}

func (w *nrgbaRows) WriteRow(src []uint16) error {
	off := w.im.PixOffset(0, w.y)
	row := w.im.Pix[off : off+len(src)]
	for s, v := range src {
		row[s] = uint8((uint32(v)*255 + 32767) / 65535)
	}
	w.y++
	return nil
}
