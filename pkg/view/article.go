package view

import (
	"errors"
	"fmt"

	"contentful-blog/pkg/models"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrMissingBody = errors.New("article has no body")

type MarkdownRenderer interface {
	Render(source string) (string, error)
}

type ArticleRenderer struct {
	md MarkdownRenderer
}

func NewArticleRenderer(md MarkdownRenderer) *ArticleRenderer {
	return &ArticleRenderer{md: md}
}

// Render fills the sub-slots of the article container. Description and image
// slots are left alone when the entry has none; a missing body is an error.
func (r *ArticleRenderer) Render(article *html.Node, e *models.Entry) error {
	title, err := FindSlot(article, SlotTitle)
	if err != nil {
		return err
	}
	SetText(title, e.Fields.Title)

	date, err := FindSlot(article, SlotPublishDate)
	if err != nil {
		return err
	}
	SetText(date, FormatDate(e.Fields.PublishDate))

	if e.Fields.Description != nil {
		description, err := FindSlot(article, SlotDescription)
		if err != nil {
			return err
		}
		if err := r.setMarkdown(description, *e.Fields.Description); err != nil {
			return err
		}
	}

	if e.Fields.Image != nil {
		image, err := FindSlot(article, SlotImage)
		if err != nil {
			return err
		}
		image.AppendChild(element(atom.Img,
			attr("src", e.Fields.Image.Fields.File.URL),
			attr("alt", e.Fields.Image.Fields.Description),
		))
	}

	if e.Fields.Body == nil {
		return fmt.Errorf("entry %s: %w", e.Sys.ID, ErrMissingBody)
	}
	body, err := FindSlot(article, SlotBody)
	if err != nil {
		return err
	}
	return r.setMarkdown(body, *e.Fields.Body)
}

func (r *ArticleRenderer) setMarkdown(n *html.Node, source string) error {
	rendered, err := r.md.Render(source)
	if err != nil {
		return err
	}
	return SetHTML(n, rendered)
}

// AdjacentLink builds <a href="/?id=xxxxx">title</a> for a previous or next article.
func AdjacentLink(e *models.Entry) *html.Node {
	return Link(EntryHref(e.Sys.ID), e.Fields.Title)
}
