package png

import "testing"

// TestAdam7Coverage checks spec.md §4.6's coverage property: across all
// seven passes, each (y,x) coordinate of the full width x height grid is
// produced by exactly one pass.
func TestAdam7Coverage(t *testing.T) {
	sizes := [][2]int{
		{1, 1}, {2, 2}, {3, 3}, {7, 7}, {8, 8}, {9, 5}, {16, 16}, {1, 20}, {20, 1},
	}
	for _, sz := range sizes {
		width, height := sz[0], sz[1]
		seen := make(map[[2]int]int)
		for _, pass := range adam7Passes {
			pw, ph := pass.dims(width, height)
			for r := 0; r < ph; r++ {
				y := pass.startY + r*pass.stepY
				for k := 0; k < pw; k++ {
					x := pass.startX + k*pass.stepX
					seen[[2]int{y, x}]++
				}
			}
		}
		if len(seen) != width*height {
			t.Fatalf("%dx%d: covered %d distinct coordinates, want %d", width, height, len(seen), width*height)
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				count := seen[[2]int{y, x}]
				if count != 1 {
					t.Fatalf("%dx%d: coordinate (%d,%d) covered %d times, want 1", width, height, y, x, count)
				}
			}
		}
	}
}
