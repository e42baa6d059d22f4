package nav

// lineIterator walks grid cells from start to end with Bresenham's algorithm.
type lineIterator struct {
	current, target cell
	deltaX, deltaY  int
	stepX, stepY    int
	err             int
	started         bool
}

func newLineIterator(start, end cell) *lineIterator {
	it := &lineIterator{current: start, target: end}
	it.deltaX = absInt(end.x - start.x)
	it.deltaY = -absInt(end.y - start.y)
	it.stepX = 1
	if start.x > end.x {
		it.stepX = -1
	}
	it.stepY = 1
	if start.y > end.y {
		it.stepY = -1
	}
	it.err = it.deltaX + it.deltaY
	return it
}

// Next advances to the next cell. The first call yields the start cell;
// it returns false once the target has been yielded.
func (it *lineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.current == it.target {
		return false
	}

	e2 := 2 * it.err
	if e2 >= it.deltaY {
		it.err += it.deltaY
		it.current.x += it.stepX
	}
	if e2 <= it.deltaX {
		it.err += it.deltaX
		it.current.y += it.stepY
	}
	return true
}

// Cell returns the current cell.
func (it *lineIterator) Cell() cell { return it.current }
