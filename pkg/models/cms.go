package models

type ContentType struct {
	Sys          Sys     `json:"sys"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	DisplayField string  `json:"displayField,omitempty"`
	Fields       []Field `json:"fields"`
}

type Field struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	LinkType string `json:"linkType,omitempty"`
	Required bool   `json:"required"`
}

type ContentTypeCollection struct {
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
	Items []ContentType `json:"items"`
}

// ArticleContentType describes the fields an article entry carries.
func ArticleContentType(id string) ContentType {
	return ContentType{
		Sys:          Sys{ID: id, Type: "ContentType"},
		Name:         "Article",
		DisplayField: "title",
		Fields: []Field{
			{ID: "title", Name: "Title", Type: "Symbol", Required: true},
			{ID: "publishDate", Name: "Publish Date", Type: "Date", Required: true},
			{ID: "description", Name: "Description", Type: "Text"},
			{ID: "body", Name: "Body", Type: "Text", Required: true},
			{ID: "image", Name: "Image", Type: "Link", LinkType: "Asset"},
		},
	}
}
