package png

// adam7Pass is one row of the fixed seven-pass interlace table, spec.md
// §4.6.
type adam7Pass struct {
	startX, startY int
	stepX, stepY   int
}

var adam7Passes = [7]adam7Pass{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

// ceilDiv computes ceil(a/b) for non-negative a and positive b.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// dims returns this pass's pixel width and height within an image of the
// given overall width/height.
func (p adam7Pass) dims(width, height int) (passWidth, passHeight int) {
	passWidth = ceilDiv(width-p.startX, p.stepX)
	passHeight = ceilDiv(height-p.startY, p.stepY)
	return
}
