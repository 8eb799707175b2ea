package meme

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Actions of the buttons in the layer list, stored in their data-action attribute.
const (
	ActionSelect = "select"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// LayerItem is one row in the layer list.
type LayerItem struct {
	ID     int
	Label  string
	Active bool
}

// LayerList projects the layers of the editor onto rows of the layer list, in z-order. The selected layer is active.
func LayerList(e *Editor) []LayerItem {
	items := make([]LayerItem, 0, len(e.layers))
	for _, layer := range e.layers {
		items = append(items, LayerItem{
			ID:     layer.ID,
			Label:  layer.Text,
			Active: layer.ID == e.selected,
		})
	}
	return items
}

// LayerListNodes builds the markup of the layer list. Each row has a data-id attribute and its buttons a data-action
// attribute so that a host can dispatch clicks with a single delegated listener.
func LayerListNodes(items []LayerItem) []*html.Node {
	if len(items) == 0 {
		div := element(atom.Div, "empty-state")
		p := element(atom.P, "")
		p.AppendChild(text("No text layers yet"))
		span := element(atom.Span, "")
		span.AppendChild(text("Add text to get started"))
		div.AppendChild(p)
		div.AppendChild(span)
		return []*html.Node{div}
	}

	nodes := make([]*html.Node, 0, len(items))
	for _, item := range items {
		class := "text-layer-item"
		if item.Active {
			class += " active"
		}
		id := strconv.Itoa(item.ID)
		row := element(atom.Div, class)
		row.Attr = append(row.Attr,
			html.Attribute{Key: "data-id", Val: id},
			html.Attribute{Key: "data-action", Val: ActionSelect},
		)

		content := element(atom.Div, "text-layer-content")
		content.AppendChild(text(item.Label))
		row.AppendChild(content)

		actions := element(atom.Div, "text-layer-actions")
		actions.AppendChild(button("layer-action-btn edit-layer-btn", id, ActionEdit, "Edit"))
		actions.AppendChild(button("layer-action-btn delete-layer-btn", id, ActionDelete, "Delete"))
		row.AppendChild(actions)
		nodes = append(nodes, row)
	}
	return nodes
}

// RenderLayerListHTML writes the markup of the layer list to w. Labels are escaped.
func RenderLayerListHTML(w io.Writer, items []LayerItem) error {
	for _, n := range LayerListNodes(items) {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func button(class, id, action, label string) *html.Node {
	n := element(atom.Button, class)
	n.Attr = append(n.Attr,
		html.Attribute{Key: "type", Val: "button"},
		html.Attribute{Key: "data-id", Val: id},
		html.Attribute{Key: "data-action", Val: action},
	)
	n.AppendChild(text(label))
	return n
}
