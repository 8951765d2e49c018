// ◄◄◄ pnm.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

// Streaming readers and writers for the binary netpbm formats (PGM "P5" and
// PPM "P6"). These exist so that the command-line tool can upsize an image
// without ever holding a full decoded copy in memory: the reader satisfies
// RowReader, the writer RowWriter, and the engine pulls rows through them.

import "bufio"
import "errors"
import "fmt"
import "io"

// A PNMReader reads the raster of a binary PGM or PPM stream row by row.
// The header fields are available after NewPNMReader returns.
type PNMReader struct {
	br *bufio.Reader

	Width    int
	Height   int
	MaxVal   int
	Channels int // 1 for PGM, 3 for PPM

	rowsLeft int
	scratch  []byte
}

// NewPNMReader parses the header of a binary PGM ("P5") or PPM ("P6")
// stream and positions the reader at the first raster row.
func NewPNMReader(r io.Reader) (*PNMReader, error) {
	pr := new(PNMReader)
	pr.br = bufio.NewReader(r)

	var magic [2]byte
	if _, err := io.ReadFull(pr.br, magic[:]); err != nil {
		return nil, fmt.Errorf("reading netpbm magic number: %w", err)
	}
	switch {
	case magic[0] == 'P' && magic[1] == '5':
		pr.Channels = 1
	case magic[0] == 'P' && magic[1] == '6':
		pr.Channels = 3
	default:
		return nil, fmt.Errorf("not a binary PGM or PPM file (magic %q)", magic[:])
	}

	var err error
	if pr.Width, err = pr.headerInt("width"); err != nil {
		return nil, err
	}
	if pr.Height, err = pr.headerInt("height"); err != nil {
		return nil, err
	}
	if pr.MaxVal, err = pr.headerInt("maxval"); err != nil {
		return nil, err
	}
	if pr.MaxVal < 1 || pr.MaxVal > 65535 {
		return nil, fmt.Errorf("unsupported maxval %d", pr.MaxVal)
	}

	// The header ends with exactly one whitespace byte; headerInt has
	// already consumed it.

	pr.rowsLeft = pr.Height
	n := 1
	if pr.MaxVal > 255 {
		n = 2
	}
	pr.scratch = make([]byte, pr.Width*pr.Channels*n)
	return pr, nil
}

// headerInt reads the next unsigned decimal header field, skipping
// whitespace and "#" comment lines, and consumes the single whitespace byte
// that terminates the field.
func (pr *PNMReader) headerInt(name string) (int, error) {
	inComment := false
	sawDigit := false
	v := 0
	for {
		b, err := pr.br.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("reading netpbm %s: %w", name, err)
		}
		switch {
		case inComment:
			if b == '\n' || b == '\r' {
				inComment = false
			}
		case b >= '0' && b <= '9':
			sawDigit = true
			v = v*10 + int(b-'0')
			if v > 0xffffff {
				return 0, fmt.Errorf("netpbm %s out of range", name)
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if sawDigit {
				return v, nil
			}
		case b == '#' && !sawDigit:
			inComment = true
		default:
			return 0, fmt.Errorf("bad character %q in netpbm %s", b, name)
		}
	}
}

// ReadRow reads the next raster row into dst, which must have room for
// Width*Channels samples.
func (pr *PNMReader) ReadRow(dst []uint16) error {
	if pr.rowsLeft < 1 {
		return errors.New("read past the last row")
	}
	if _, err := io.ReadFull(pr.br, pr.scratch); err != nil {
		return fmt.Errorf("reading raster row %d: %w", pr.Height-pr.rowsLeft, err)
	}
	pr.rowsLeft--

	if pr.MaxVal > 255 {
		for s := range dst {
			dst[s] = uint16(pr.scratch[2*s])<<8 | uint16(pr.scratch[2*s+1])
		}
	} else {
		for s, v := range pr.scratch {
			dst[s] = uint16(v)
		}
	}
	return nil
}

// A PNMWriter writes a binary PGM or PPM stream row by row. The header is
// written by NewPNMWriter; the caller must call Flush after the last row.
type PNMWriter struct {
	bw *bufio.Writer

	width    int
	channels int
	maxVal   int
	scratch  []byte
}

// NewPNMWriter writes a binary PGM ("P5", channels 1) or PPM ("P6",
// channels 3) header and returns a writer for the raster.
func NewPNMWriter(w io.Writer, width, height, channels, maxVal int) (*PNMWriter, error) {
	var magic string
	switch channels {
	case 1:
		magic = "P5"
	case 3:
		magic = "P6"
	default:
		return nil, fmt.Errorf("netpbm cannot represent %d channels", channels)
	}
	if maxVal < 1 || maxVal > 65535 {
		return nil, fmt.Errorf("unsupported maxval %d", maxVal)
	}

	pw := new(PNMWriter)
	pw.bw = bufio.NewWriter(w)
	pw.width = width
	pw.channels = channels
	pw.maxVal = maxVal

	n := 1
	if maxVal > 255 {
		n = 2
	}
	pw.scratch = make([]byte, width*channels*n)

	_, err := fmt.Fprintf(pw.bw, "%s\n%d %d\n%d\n", magic, width, height, maxVal)
	return pw, err
}

// WriteRow writes one raster row; src holds width*channels samples.
func (pw *PNMWriter) WriteRow(src []uint16) error {
	if pw.maxVal > 255 {
		for s, v := range src {
			pw.scratch[2*s] = uint8(v >> 8)
			pw.scratch[2*s+1] = uint8(v)
		}
	} else {
		for s, v := range src {
			pw.scratch[s] = uint8(v)
		}
	}
	_, err := pw.bw.Write(pw.scratch)
	return err
}

// Flush writes any buffered raster bytes to the underlying writer.
func (pw *PNMWriter) Flush() error {
	return pw.bw.Flush()
}
