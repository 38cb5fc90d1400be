// Package flex models the subset of the LINE Flex Message layout used for
// receipts: a bubble whose body is a tree of boxes, texts and separators.
package flex

import "encoding/json"

// Component is any node that may appear inside a Box.
type Component interface {
	componentType() string
}

// Bubble is the root container of a Flex message.
type Bubble struct {
	Size string `json:"size,omitempty"`
	Body *Box   `json:"body,omitempty"`
}

// MarshalJSON adds the "bubble" type discriminator.
func (b Bubble) MarshalJSON() ([]byte, error) {
	type alias Bubble
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "bubble", alias: alias(b)})
}

// Layout values for Box.
const (
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
)

// Box lays out its children vertically or horizontally.
type Box struct {
	Layout   string      `json:"layout"`
	Spacing  string      `json:"spacing,omitempty"`
	Margin   string      `json:"margin,omitempty"`
	Contents []Component `json:"contents"`
}

func (*Box) componentType() string { return "box" }

// MarshalJSON adds the "box" type discriminator.
func (b *Box) MarshalJSON() ([]byte, error) {
	type alias Box
	contents := b.Contents
	if contents == nil {
		contents = []Component{}
	}
	a := alias(*b)
	a.Contents = contents
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: b.componentType(), alias: a})
}

// Text is a single run of styled text.
type Text struct {
	Text   string `json:"text"`
	Size   string `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
	Color  string `json:"color,omitempty"`
	Align  string `json:"align,omitempty"`
	Flex   int    `json:"flex,omitempty"`
	Wrap   bool   `json:"wrap,omitempty"`
}

func (*Text) componentType() string { return "text" }

// MarshalJSON adds the "text" type discriminator.
func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: t.componentType(), alias: alias(*t)})
}

// Separator draws a horizontal rule.
type Separator struct {
	Margin string `json:"margin,omitempty"`
}

func (*Separator) componentType() string { return "separator" }

// MarshalJSON adds the "separator" type discriminator.
func (s *Separator) MarshalJSON() ([]byte, error) {
	type alias Separator
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: s.componentType(), alias: alias(*s)})
}

// VBox returns a vertical box holding contents.
func VBox(contents ...Component) *Box {
	return &Box{Layout: LayoutVertical, Contents: contents}
}

// HBox returns a horizontal box holding contents.
func HBox(contents ...Component) *Box {
	return &Box{Layout: LayoutHorizontal, Contents: contents}
}

// Texts collects every Text node under c in document order.
func Texts(c Component) []*Text {
	var out []*Text
	var walk func(Component)
	walk = func(n Component) {
		switch v := n.(type) {
		case *Text:
			out = append(out, v)
		case *Box:
			for _, child := range v.Contents {
				walk(child)
			}
		}
	}
	walk(c)
	return out
}
