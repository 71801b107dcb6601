package view

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, s string) {
	removeChildren(n)
	n.AppendChild(text(s))
}

// SetHTML replaces the children of n with the parsed markup.
func SetHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}
	removeChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// Link builds <a href="href">label</a>.
func Link(href, label string) *html.Node {
	a := element(atom.A, attr("href", href))
	a.AppendChild(text(label))
	return a
}
