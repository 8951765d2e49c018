// ◄◄◄ overlap_test.go ►►►

package earesize

import "testing"

// bruteLastOverlap is the definition of the overlap map, applied directly:
// the largest kk whose fine cell still begins inside coarse cell k.
func bruteLastOverlap(coarse, fine int) []int {
	last := make([]int, coarse-1)
	for k := range last {
		kk := 0
		for int64(kk+1)*int64(coarse) < int64(k+1)*int64(fine) {
			kk++
		}
		last[k] = kk
	}
	return last
}

func TestLastOverlapIdentity(t *testing.T) {
	last := lastOverlapIndexes(15, 15)
	if len(last) != 14 {
		t.Fatalf("length is %d, expected 14", len(last))
	}
	for k, kk := range last {
		if kk != k {
			t.Errorf("entry %d is %d, expected %d", k, kk, k)
		}
	}
}

func TestLastOverlapAgainstDefinition(t *testing.T) {
	cases := []struct{ coarse, fine int }{
		{15, 16},
		{15, 30},
		{15, 37},
		{16, 39},
		{17, 1000},
		{640, 641},
		{640, 1913},
	}
	for _, c := range cases {
		got := lastOverlapIndexes(c.coarse, c.fine)
		want := bruteLastOverlap(c.coarse, c.fine)
		for k := range want {
			if got[k] != want[k] {
				t.Errorf("%d->%d: entry %d is %d, expected %d",
					c.coarse, c.fine, k, got[k], want[k])
			}
		}
	}
}

func TestLastOverlapShape(t *testing.T) {
	for _, c := range []struct{ coarse, fine int }{{15, 16}, {20, 57}, {99, 100}} {
		last := lastOverlapIndexes(c.coarse, c.fine)
		prev := -1
		for k, kk := range last {
			if kk <= prev {
				t.Errorf("%d->%d: entry %d is %d, not above previous %d",
					c.coarse, c.fine, k, kk, prev)
			}
			if kk >= c.fine-1 {
				t.Errorf("%d->%d: entry %d is %d, leaving nothing for the last cell",
					c.coarse, c.fine, k, kk)
			}
			prev = kk
		}
	}
}
