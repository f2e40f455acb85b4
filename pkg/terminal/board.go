// Package terminal renders counters on a tcell screen.
//
// A Board is a scrollable column of labelled rows. It doubles as the host
// Document (rows are found by "#id") and as the visibility host: a row
// intersects when it lies inside the visible window, so lazy counters start
// as they are scrolled into view.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/countup/pkg/errors"
	"github.com/go-drift/countup/pkg/platform"
)

// Styles used when drawing.
var (
	TitleStyle  = tcell.StyleDefault.Bold(true)
	ValueStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	StatusStyle = tcell.StyleDefault.Reverse(true)
	HeaderStyle = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

var errDuplicateRow = errors.New("duplicate or empty row id")

// Board lays out labels one per screen line below a header line and above
// a status line.
type Board struct {
	screen tcell.Screen
	header string
	status string

	labels []*Label
	byID   map[string]*Label
	offset int

	visible   map[*Label]bool
	observers []*boardObserver

	lines []string
}

// NewBoard returns an empty board drawing onto screen.
func NewBoard(screen tcell.Screen, header string) *Board {
	return &Board{
		screen:  screen,
		header:  header,
		byID:    make(map[string]*Label),
		visible: make(map[*Label]bool),
	}
}

// Add appends a row. The id must be unique.
func (b *Board) Add(id, title string) (*Label, error) {
	id = platform.ID(id)
	if _, dup := b.byID[id]; dup || id == "" {
		return nil, errors.E("terminal.Add", errors.KindElement, errDuplicateRow, id)
	}
	l := &Label{board: b, id: id, title: title, index: len(b.labels)}
	b.labels = append(b.labels, l)
	b.byID[id] = l
	b.refreshVisibility()
	return l, nil
}

// Labels returns the rows in display order.
func (b *Board) Labels() []*Label {
	return append([]*Label(nil), b.labels...)
}

// QuerySelector implements platform.Document.
func (b *Board) QuerySelector(locator string) platform.Element {
	if l, ok := b.byID[platform.ID(locator)]; ok {
		return l
	}
	return nil
}

// SetStatus replaces the status line text.
func (b *Board) SetStatus(text string) {
	b.status = text
}

// viewport returns how many rows fit between the header and status lines.
func (b *Board) viewport() int {
	_, h := b.screen.Size()
	if h <= 2 {
		return 0
	}
	return h - 2
}

// Offset returns the index of the first visible row.
func (b *Board) Offset() int {
	return b.offset
}

// ScrollBy moves the window by n rows, clamped to the content, and notifies
// observers of rows that entered or left it.
func (b *Board) ScrollBy(n int) {
	maxOffset := len(b.labels) - b.viewport()
	if maxOffset < 0 {
		maxOffset = 0
	}
	b.offset += n
	if b.offset > maxOffset {
		b.offset = maxOffset
	}
	if b.offset < 0 {
		b.offset = 0
	}
	b.refreshVisibility()
}

// Resize re-reads the screen size and recomputes visibility.
func (b *Board) Resize() {
	b.ScrollBy(0)
}

// IsVisible reports whether l is inside the window.
func (b *Board) IsVisible(l *Label) bool {
	return b.visible[l]
}

func (b *Board) refreshVisibility() {
	view := b.viewport()
	changed := make(map[*Label]bool)
	for _, l := range b.labels {
		v := l.index >= b.offset && l.index < b.offset+view
		if b.visible[l] != v {
			changed[l] = v
		}
		b.visible[l] = v
	}
	if len(changed) == 0 {
		return
	}

	observers := append([]*boardObserver(nil), b.observers...)
	for _, o := range observers {
		var batch []platform.IntersectionEntry
		for _, l := range b.labels {
			v, ok := changed[l]
			if !ok {
				continue
			}
			if _, watched := o.targets[l]; watched {
				batch = append(batch, platform.IntersectionEntry{Target: l, IsIntersecting: v})
			}
		}
		if len(batch) > 0 {
			o.callback(batch)
		}
	}
}

// Observers returns a factory creating visibility observers on this board.
func (b *Board) Observers() platform.ObserverFactory {
	return func(callback func([]platform.IntersectionEntry)) platform.IntersectionObserver {
		o := &boardObserver{
			board:    b,
			callback: callback,
			targets:  make(map[*Label]struct{}),
		}
		b.observers = append(b.observers, o)
		return o
	}
}

// Draw renders the header, visible rows and status line, then shows the
// screen.
func (b *Board) Draw() {
	w, h := b.screen.Size()
	b.screen.Clear()
	b.lines = make([]string, h)
	if h == 0 {
		return
	}

	b.put(0, w, b.header, HeaderStyle)
	view := b.viewport()
	for i := 0; i < view; i++ {
		idx := b.offset + i
		if idx >= len(b.labels) {
			break
		}
		b.drawLabel(i+1, w, b.labels[idx])
	}
	if h > 1 {
		b.put(h-1, w, b.status, StatusStyle)
	}
	b.screen.Show()
}

// Line returns the text most recently drawn on screen line y.
func (b *Board) Line(y int) string {
	if y < 0 || y >= len(b.lines) {
		return ""
	}
	return b.lines[y]
}

func (b *Board) drawLabel(y, w int, l *Label) {
	title := l.title + ": "
	b.put(y, w, title, TitleStyle)
	x := len([]rune(title))
	b.putAt(x, y, w, l.text, ValueStyle)
	b.lines[y] = title + l.text
}

func (b *Board) put(y, w int, text string, style tcell.Style) {
	b.putAt(0, y, w, text, style)
	b.lines[y] = text
}

func (b *Board) putAt(x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		b.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Label is a board row. It implements platform.Element.
type Label struct {
	board *Board
	id    string
	title string
	index int
	text  string
}

// ID returns the row id.
func (l *Label) ID() string { return l.id }

// Title returns the row title.
func (l *Label) Title() string { return l.title }

// SetTextContent implements platform.Element. The new text appears on the
// next Draw.
func (l *Label) SetTextContent(text string) { l.text = text }

// TextContent implements platform.Element.
func (l *Label) TextContent() string { return l.text }

type boardObserver struct {
	board    *Board
	callback func([]platform.IntersectionEntry)
	targets  map[*Label]struct{}
}

// Observe watches el. Elements that are not rows of this board are ignored.
// A row already in view is reported at once.
func (o *boardObserver) Observe(el platform.Element) {
	l, ok := el.(*Label)
	if !ok || l.board != o.board {
		return
	}
	o.targets[l] = struct{}{}
	if o.board.visible[l] {
		o.callback([]platform.IntersectionEntry{{Target: l, IsIntersecting: true}})
	}
}

func (o *boardObserver) Unobserve(el platform.Element) {
	if l, ok := el.(*Label); ok {
		delete(o.targets, l)
	}
}

func (o *boardObserver) Disconnect() {
	o.targets = make(map[*Label]struct{})
	for i, cur := range o.board.observers {
		if cur == o {
			o.board.observers = append(o.board.observers[:i], o.board.observers[i+1:]...)
			return
		}
	}
}
