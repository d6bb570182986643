package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_GetElementByID(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div", "number-field-group")

	assert.Same(t, el, doc.GetElementByID("number-field-group"))
	assert.Nil(t, doc.GetElementByID("missing"))
}

func TestDocument_FocusTracking(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("input", "a")
	b := doc.CreateElement("iframe", "b")

	assert.Nil(t, doc.ActiveElement())

	a.Focus()
	assert.Same(t, a, doc.ActiveElement())

	b.Focus()
	assert.Same(t, b, doc.ActiveElement())

	a.Blur()
	assert.Same(t, b, doc.ActiveElement(), "blurring a non-active element is a no-op")

	b.Blur()
	assert.Nil(t, doc.ActiveElement())
}

func TestElement_Classes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div", "")

	el.AddClass("one", "two")
	assert.True(t, el.HasClass("one"))
	assert.True(t, el.HasClass("two"))

	el.RemoveClass("one")
	assert.False(t, el.HasClass("one"))

	el.ToggleClass("three", true)
	assert.True(t, el.HasClass("three"))
	el.ToggleClass("three", false)
	assert.False(t, el.HasClass("three"))
}

func TestElement_Attributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("input", "")

	el.SetAttribute("aria-invalid", "true")
	v, ok := el.Attribute("aria-invalid")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	el.RemoveAttribute("aria-invalid")
	_, ok = el.Attribute("aria-invalid")
	assert.False(t, ok)
}
