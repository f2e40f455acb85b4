// Package platform defines the host collaborators a counter renders into:
// display elements, element lookup and visibility observation.
//
// Real hosts (a terminal board, a web bridge) implement these interfaces.
// MemoryDocument and VisibilityTracker are in-process implementations for
// tests and headless runs.
package platform

import (
	"strings"
	"sync"
)

// Element is a display surface with a settable text property.
type Element interface {
	SetTextContent(text string)
	TextContent() string
}

// Document resolves locator strings to elements. QuerySelector returns nil
// when nothing matches.
type Document interface {
	QuerySelector(locator string) Element
}

// TextNode is an in-memory Element. The zero value is ready to use.
type TextNode struct {
	mu     sync.Mutex
	text   string
	writes int
}

// NewTextNode returns a node with initial text.
func NewTextNode(text string) *TextNode {
	return &TextNode{text: text}
}

// SetTextContent replaces the node's text.
func (n *TextNode) SetTextContent(text string) {
	n.mu.Lock()
	n.text = text
	n.writes++
	n.mu.Unlock()
}

// TextContent returns the node's text.
func (n *TextNode) TextContent() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// Writes reports how many times SetTextContent has been called.
func (n *TextNode) Writes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.writes
}

// MemoryDocument is a Document backed by a map of ids to elements.
// Locators are "#id" or a bare id.
type MemoryDocument struct {
	mu       sync.RWMutex
	elements map[string]Element
}

// NewMemoryDocument returns an empty document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{elements: make(map[string]Element)}
}

// Add registers el under id, replacing any previous element.
func (d *MemoryDocument) Add(id string, el Element) {
	d.mu.Lock()
	d.elements[ID(id)] = el
	d.mu.Unlock()
}

// Create registers and returns a new TextNode under id.
func (d *MemoryDocument) Create(id string) *TextNode {
	n := &TextNode{}
	d.Add(id, n)
	return n
}

// Remove unregisters id.
func (d *MemoryDocument) Remove(id string) {
	d.mu.Lock()
	delete(d.elements, ID(id))
	d.mu.Unlock()
}

// QuerySelector implements Document.
func (d *MemoryDocument) QuerySelector(locator string) Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if el, ok := d.elements[ID(locator)]; ok {
		return el
	}
	return nil
}

// ID strips a leading '#' and surrounding whitespace from a locator.
func ID(locator string) string {
	return strings.TrimPrefix(strings.TrimSpace(locator), "#")
}
