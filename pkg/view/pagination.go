package view

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func PageHref(page int) string {
	return "/?page=" + strconv.Itoa(page)
}

// PaginationControl builds one <li> per page from 1 to maxPage. The current
// page is plain text, the others link to /?page=n.
func PaginationControl(current, maxPage int) *html.Node {
	ul := element(atom.Ul)
	for page := 1; page <= maxPage; page++ {
		li := element(atom.Li)
		label := strconv.Itoa(page)
		if page == current {
			li.AppendChild(text(label))
		} else {
			li.AppendChild(Link(PageHref(page), label))
		}
		ul.AppendChild(li)
	}
	return ul
}
