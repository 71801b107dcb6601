package view

import (
	"net/url"

	"contentful-blog/pkg/models"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DateLayout renders publish dates as YYYY年MM月DD日.
const DateLayout = "2006年01月02日"

func FormatDate(d models.Date) string {
	return d.Format(DateLayout)
}

// EntryHref is the link to an article page.
func EntryHref(id string) string {
	return "/?id=" + url.QueryEscape(id)
}

// TitleList builds
//
//	<ul>
//	    <li><a href="/?id=xxxxx">title / 2006年01月02日</a></li>
//	    ...
//	</ul>
//
// keeping the order of entries.
func TitleList(entries []models.Entry) *html.Node {
	ul := element(atom.Ul)
	for _, e := range entries {
		li := element(atom.Li)
		li.AppendChild(Link(EntryHref(e.Sys.ID), e.Fields.Title+" / "+FormatDate(e.Fields.PublishDate)))
		ul.AppendChild(li)
	}
	return ul
}
