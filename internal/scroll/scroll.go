// Package scroll models a read-only viewport over a frozen snapshot of
// transcript lines.
package scroll

// Window is an offset into a fixed slice of lines. The zero offset shows the
// top of the snapshot; Bottom shows the final page. All movement clamps so the
// offset stays within [0, max(0, total-page)].
type Window struct {
	lines  []string
	offset int
	page   int
	step   int
}

// NewWindow freezes lines into a scrollable window with the given page size.
// The page step defaults to two lines short of a page so consecutive pages
// overlap; WithStep overrides it.
func NewWindow(lines []string, page int) Window {
	if page < 1 {
		page = 1
	}
	step := page - 2
	if step < 1 {
		step = 1
	}
	w := Window{lines: lines, page: page, step: step}
	return w.Bottom()
}

// Lines returns the slice of lines currently visible.
func (w Window) Lines() []string {
	if w.offset >= len(w.lines) {
		return nil
	}
	end := w.offset + w.page
	if end > len(w.lines) {
		end = len(w.lines)
	}
	return w.lines[w.offset:end]
}

// Offset returns the index of the first visible line.
func (w Window) Offset() int { return w.offset }

// Total returns the number of lines in the snapshot.
func (w Window) Total() int { return len(w.lines) }

// Page returns the window height in lines.
func (w Window) Page() int { return w.page }

// Step returns the number of lines a page movement covers.
func (w Window) Step() int { return w.step }

// WithStep overrides the page step, floored at one line.
func (w Window) WithStep(step int) Window {
	if step < 1 {
		step = 1
	}
	w.step = step
	return w
}

// AtBottom reports whether the window shows the final page.
func (w Window) AtBottom() bool { return w.offset >= w.maxOffset() }

// AtTop reports whether the window shows the first line.
func (w Window) AtTop() bool { return w.offset == 0 }

// LineUp moves one line toward the top.
func (w Window) LineUp() Window { return w.moveTo(w.offset - 1) }

// LineDown moves one line toward the bottom.
func (w Window) LineDown() Window { return w.moveTo(w.offset + 1) }

// PageUp moves one page step toward the top.
func (w Window) PageUp() Window { return w.moveTo(w.offset - w.step) }

// PageDown moves one page step toward the bottom.
func (w Window) PageDown() Window { return w.moveTo(w.offset + w.step) }

// WithLines swaps in a fresh snapshot, keeping the current offset clamped to
// the new bounds. Used when the transcript grows while scrolled.
func (w Window) WithLines(lines []string) Window {
	w.lines = lines
	return w.moveTo(w.offset)
}

// Top jumps to the first line.
func (w Window) Top() Window { return w.moveTo(0) }

// Bottom jumps to the final page.
func (w Window) Bottom() Window { return w.moveTo(w.maxOffset()) }

func (w Window) moveTo(offset int) Window {
	if max := w.maxOffset(); offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	w.offset = offset
	return w
}

func (w Window) maxOffset() int {
	if n := len(w.lines) - w.page; n > 0 {
		return n
	}
	return 0
}
