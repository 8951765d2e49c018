// ◄◄◄ doc.go ►►►
// Copyright © 2024 Marc Lagacé

/*
Package earesize enlarges raster images by exact-area sampling of a
biquadratic histospline.

The histospline is the unique piecewise-biquadratic surface whose average
over each input pixel's footprint equals that pixel's value; every output
pixel is then the exact average of the surface over the output pixel's own
footprint. Enlarging and then shrinking back to the original size
reproduces the input exactly (up to rounding), a property ordinary
resampling filters do not have. The package only enlarges; both target
dimensions must be at least the source's, and the source must be at least
15 pixels in each direction.

This is a brief summary of how to use the package with Go image objects.

Earesize resizes image objects that satisfy the image.Image interface
from Go's "image" package. You can create such an object using the
image.Decode method to read from a file, or from scratch with a method such
as image.NewRGBA. The steps below assume you have a pointer to such an
image in a variable named sourceImage.

Import the earesize package, and any other packages you need:

    import "image"
    import "github.com/mlagace/earesize"

Create a new Resizer based on your source image:

    rz := earesize.New(sourceImage)

Tell earesize what size, in pixels, to make the new image:

    rz.SetTargetSize(500, 500)

Optionally, select the spline end condition with SetBoundaryCondition.
Now resize the image, by calling ResizeToNRGBA or ResizeToNRGBA64:

    resizedImage, err := rz.ResizeToNRGBA()

You can write the resized image to a file by using the Encode method from
image/jpeg, image/png, or another image package.

Programs that work with netpbm files, or with sample streams of their own,
can skip the image objects entirely: create an Engine with NewEngine and
pass it a RowReader and a RowWriter (PNMReader and PNMWriter are provided).
The engine holds one float32 coefficient per input sample and one row of
output, never a full output image.
*/
package earesize
