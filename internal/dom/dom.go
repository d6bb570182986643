// Package dom provides the retained document model the card sheet renders
// into. It covers the narrow surface the view code touches: elements with an
// id, a tag, a class list, attributes and a text node, plus document-level
// focus tracking.
package dom

import "sync"

// Document is the root of an element tree. It tracks registered elements by
// id and the currently focused element.
type Document struct {
	mu     sync.Mutex
	byID   map[string]*Element
	active *Element
}

func NewDocument() *Document {
	return &Document{byID: map[string]*Element{}}
}

// CreateElement builds a new element attached to this document. Elements with
// a non-empty id are registered for GetElementByID lookup.
func (d *Document) CreateElement(tag, id string) *Element {
	el := &Element{
		doc:     d,
		tag:     tag,
		id:      id,
		classes: map[string]struct{}{},
		attrs:   map[string]string{},
	}
	if id != "" {
		d.mu.Lock()
		d.byID[id] = el
		d.mu.Unlock()
	}
	return el
}

func (d *Document) GetElementByID(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byID[id]
}

// ActiveElement returns the currently focused element, or nil.
func (d *Document) ActiveElement() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Document) setActive(el *Element) {
	d.mu.Lock()
	d.active = el
	d.mu.Unlock()
}

// Element is a single node. All mutators are safe for concurrent use; the
// zero value is not usable, create elements through a Document.
type Element struct {
	mu       sync.Mutex
	doc      *Document
	tag      string
	id       string
	classes  map[string]struct{}
	attrs    map[string]string
	text     string
	children []*Element
	parent   *Element
}

func (e *Element) Tag() string { return e.tag }
func (e *Element) ID() string  { return e.id }

func (e *Element) AppendChild(child *Element) {
	e.mu.Lock()
	e.children = append(e.children, child)
	e.mu.Unlock()
	child.mu.Lock()
	child.parent = e
	child.mu.Unlock()
}

func (e *Element) Children() []*Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Focus marks this element as the document's active element.
func (e *Element) Focus() {
	e.doc.setActive(e)
}

// Blur clears focus if this element currently holds it.
func (e *Element) Blur() {
	e.doc.mu.Lock()
	if e.doc.active == e {
		e.doc.active = nil
	}
	e.doc.mu.Unlock()
}

func (e *Element) SetAttribute(name, value string) {
	e.mu.Lock()
	e.attrs[name] = value
	e.mu.Unlock()
}

func (e *Element) RemoveAttribute(name string) {
	e.mu.Lock()
	delete(e.attrs, name)
	e.mu.Unlock()
}

// Attribute returns the attribute value and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

func (e *Element) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *Element) AddClass(names ...string) {
	e.mu.Lock()
	for _, n := range names {
		e.classes[n] = struct{}{}
	}
	e.mu.Unlock()
}

func (e *Element) RemoveClass(names ...string) {
	e.mu.Lock()
	for _, n := range names {
		delete(e.classes, n)
	}
	e.mu.Unlock()
}

func (e *Element) HasClass(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.classes[name]
	return ok
}

// ToggleClass adds the class when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}
