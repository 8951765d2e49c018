// ◄◄◄ pnm_test.go ►►►

package earesize

import "bytes"
import "strings"
import "testing"

func TestPNMReaderHeader(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P6\n# a comment\n16 2\n# another comment\n255\n")
	for i := 0; i < 16*2*3; i++ {
		buf.WriteByte(byte(i))
	}

	pr, err := NewPNMReader(&buf)
	if err != nil {
		t.Fatalf("NewPNMReader: %v", err)
	}
	if pr.Width != 16 || pr.Height != 2 || pr.MaxVal != 255 || pr.Channels != 3 {
		t.Fatalf("header parsed as %dx%d maxval %d channels %d",
			pr.Width, pr.Height, pr.MaxVal, pr.Channels)
	}

	row := make([]uint16, 16*3)
	if err = pr.ReadRow(row); err != nil {
		t.Fatalf("ReadRow: %v", err)
	}
	for s, v := range row {
		if v != uint16(s) {
			t.Fatalf("sample %d is %d, expected %d", s, v, s)
		}
	}
	if err = pr.ReadRow(row); err != nil {
		t.Fatalf("ReadRow: %v", err)
	}
	if err = pr.ReadRow(row); err == nil {
		t.Error("expected an error reading past the last row")
	}
}

func TestPNMRoundTrip16Bit(t *testing.T) {
	const w, h = 5, 3

	src := make([][]uint16, h)
	for i := range src {
		src[i] = make([]uint16, w)
		for j := range src[i] {
			src[i][j] = uint16(i*12345 + j*678)
		}
	}

	var buf bytes.Buffer
	pw, err := NewPNMWriter(&buf, w, h, 1, 65535)
	if err != nil {
		t.Fatalf("NewPNMWriter: %v", err)
	}
	for i := range src {
		if err = pw.WriteRow(src[i]); err != nil {
			t.Fatalf("WriteRow: %v", err)
		}
	}
	if err = pw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	pr, err := NewPNMReader(&buf)
	if err != nil {
		t.Fatalf("NewPNMReader: %v", err)
	}
	if pr.Width != w || pr.Height != h || pr.MaxVal != 65535 || pr.Channels != 1 {
		t.Fatalf("header parsed as %dx%d maxval %d channels %d",
			pr.Width, pr.Height, pr.MaxVal, pr.Channels)
	}
	row := make([]uint16, w)
	for i := range src {
		if err = pr.ReadRow(row); err != nil {
			t.Fatalf("ReadRow: %v", err)
		}
		for j := range row {
			if row[j] != src[i][j] {
				t.Errorf("sample (%d,%d) is %d, expected %d", j, i, row[j], src[i][j])
			}
		}
	}
}

func TestPNMReaderErrors(t *testing.T) {
	if _, err := NewPNMReader(strings.NewReader("P3\n1 1\n255\n")); err == nil {
		t.Error("expected an error for a plain-text PPM")
	}
	if _, err := NewPNMReader(strings.NewReader("BM")); err == nil {
		t.Error("expected an error for a non-netpbm file")
	}
	if _, err := NewPNMReader(strings.NewReader("P5\n5 x\n255\n")); err == nil {
		t.Error("expected an error for a malformed dimension")
	}
	if _, err := NewPNMReader(strings.NewReader("P5\n5 5\n70000\n")); err == nil {
		t.Error("expected an error for an oversized maxval")
	}

	pr, err := NewPNMReader(strings.NewReader("P5\n5 5\n255\nabc"))
	if err != nil {
		t.Fatalf("NewPNMReader: %v", err)
	}
	if err = pr.ReadRow(make([]uint16, 5)); err == nil {
		t.Error("expected an error for a truncated raster")
	}
}
