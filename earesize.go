// ◄◄◄ earesize.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

// This is the main file of the earesize library. It implements the
// image-object front end over the row-stream Engine.

import "errors"
import "image"

const maxImagePixels = 536870911 // ((2^31)-1)/4

// Resizer tracks the state of one upsizing operation on a Go image object.
// There is one Resizer per source image.
type Resizer struct {
	srcImage  image.Image
	srcBounds image.Rectangle
	srcW      int
	srcH      int
	dstW      int
	dstH      int

	boundary   BoundaryCondition
	maxWorkers int

	progressCallback func(msg string)
}

// New returns a Resizer that will upsize srcImg. The caller may not modify
// the image until after the first successful call to a Resize* method.
func New(srcImg image.Image) *Resizer {
	rz := new(Resizer)
	rz.SetSourceImage(srcImg)
	return rz
}

// SetSourceImage tells the Resizer the image to read.
func (rz *Resizer) SetSourceImage(srcImg image.Image) {
	rz.srcImage = srcImg
	rz.srcBounds = srcImg.Bounds()
	rz.srcW = rz.srcBounds.Dx()
	rz.srcH = rz.srcBounds.Dy()
}

// SetTargetSize sets the size, in pixels, of the resized image. Both
// dimensions must be at least as large as the source's.
func (rz *Resizer) SetTargetSize(w, h int) {
	rz.dstW = w
	rz.dstH = h
}

// SetTargetBounds sets the size of the resized image from a rectangle, for
// symmetry with the standard image constructors. The resized image's origin
// is always (0,0).
func (rz *Resizer) SetTargetBounds(dstBounds image.Rectangle) {
	rz.SetTargetSize(dstBounds.Dx(), dstBounds.Dy())
}

// SetBoundaryCondition selects the spline end condition used at the image
// edges. The default is BoundaryNatural.
func (rz *Resizer) SetBoundaryCondition(bc BoundaryCondition) {
	rz.boundary = bc
}

// SetMaxWorkerThreads tells the Resizer the maximum number of goroutines
// that it should use simultaneously to do image processing. 0 means
// default.
//
// There should be no reason to call this method, unless you want to slow
// down earesize to conserve resources for other routines.
func (rz *Resizer) SetMaxWorkerThreads(n int) {
	rz.maxWorkers = n
}

// (This is a debugging method. Please don't use.)
func (rz *Resizer) SetProgressCallback(fn func(msg string)) {
	rz.progressCallback = fn
}

func (rz *Resizer) resizeMain(dst RowWriter) error {
	if rz.srcImage == nil {
		return errors.New("no source image given")
	}
	if rz.dstW == 0 || rz.dstH == 0 {
		return errors.New("no target size given")
	}
	if int64(rz.dstW)*int64(rz.dstH) > maxImagePixels {
		return errors.New("target image too large")
	}

	// The image path always runs the engine at full 16-bit range with all
	// four channels; narrowing happens in the output writer. Samples are
	// kept in their stored encoding (no colorspace conversion) and with
	// unassociated alpha.
	e, err := NewEngine(rz.srcW, rz.srcH, rz.dstW, rz.dstH, 4, 65535)
	if err != nil {
		return err
	}
	e.SetBoundaryCondition(rz.boundary)
	e.SetMaxWorkerThreads(rz.maxWorkers)
	e.SetProgressCallback(rz.progressCallback)

	return e.Upsample(newImageRows(rz.srcImage), dst)
}

// ResizeToNRGBA upsizes the image into a new NRGBA image.
//
// Use this if you intend to write the image to an 8-bits-per-sample PNG
// file.
func (rz *Resizer) ResizeToNRGBA() (*image.NRGBA, error) {
	im := image.NewNRGBA(image.Rect(0, 0, rz.dstW, rz.dstH))
	if err := rz.resizeMain(&nrgbaRows{im: im}); err != nil {
		return nil, err
	}
	return im, nil
}

// ResizeToNRGBA64 upsizes the image into a new NRGBA64 image.
//
// Use this if you intend to write the image to a 16-bits-per-sample PNG
// file, or to further process the image.
func (rz *Resizer) ResizeToNRGBA64() (*image.NRGBA64, error) {
	im := image.NewNRGBA64(image.Rect(0, 0, rz.dstW, rz.dstH))
	if err := rz.resizeMain(&nrgba64Rows{im: im}); err != nil {
		return nil, err
	}
	return im, nil
}
