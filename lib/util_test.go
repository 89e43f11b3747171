package lib

import "testing"

func TestCeil(t *testing.T) {
	testcases := [][3]int64{
		{0, 4, 0}, {1, 4, 1}, {4, 4, 1}, {5, 4, 2}, {16, 8, 2}, {17, 8, 3},
	}
	for _, tcase := range testcases {
		if x := Ceil(tcase[0], tcase[1]); x != tcase[2] {
			t.Errorf("ceil(%v,%v) expected %v, got %v",
				tcase[0], tcase[1], tcase[2], x)
		}
	}
}
