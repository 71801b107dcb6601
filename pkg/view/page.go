package view

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"
)

// Slot ids the host page must provide.
const (
	SlotLists       = "lists"
	SlotPagination  = "pagination"
	SlotArticle     = "article"
	SlotTitle       = "title"
	SlotPublishDate = "publish-date"
	SlotDescription = "description"
	SlotImage       = "image"
	SlotBody        = "body"
	SlotNext        = "next"
	SlotPrev        = "prev"
)

var requiredSlots = []string{
	SlotLists, SlotPagination, SlotArticle, SlotTitle, SlotPublishDate,
	SlotDescription, SlotImage, SlotBody, SlotNext, SlotPrev,
}

var ErrSlotNotFound = errors.New("slot not found")

//go:embed templates/index.html
var defaultTemplate []byte

// Template is the host page markup. Every request gets its own parsed copy.
type Template struct {
	source []byte
}

func DefaultTemplate() *Template {
	return &Template{source: defaultTemplate}
}

// LoadTemplate reads a host page from path and checks that it has every slot.
func LoadTemplate(path string) (*Template, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return ParseTemplate(source)
}

func ParseTemplate(source []byte) (*Template, error) {
	t := &Template{source: source}
	page, err := t.NewPage()
	if err != nil {
		return nil, err
	}
	for _, id := range requiredSlots {
		if _, err := page.Slot(id); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Template) NewPage() (*Page, error) {
	doc, err := html.Parse(bytes.NewReader(t.source))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{doc: doc}, nil
}

// Page is one host page document being filled in.
type Page struct {
	doc *html.Node
}

func (p *Page) Slot(id string) (*html.Node, error) {
	return FindSlot(p.doc, id)
}

// Append adds n as the last child of the slot.
func (p *Page) Append(id string, n *html.Node) error {
	slot, err := p.Slot(id)
	if err != nil {
		return err
	}
	slot.AppendChild(n)
	return nil
}

func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.doc)
}

// FindSlot finds the element with the given id below root.
func FindSlot(root *html.Node, id string) (*html.Node, error) {
	if n := findNodeByID(root, id); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: #%s", ErrSlotNotFound, id)
}

func findNodeByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findNodeByID(c, id); result != nil {
			return result
		}
	}
	return nil
}
