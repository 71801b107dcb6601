package models

import (
	"net/url"
	"strconv"
)

// Query is the filter, sort and paging parameters sent with a collection request.
// Keys use the Contentful search parameter syntax, e.g. "sys.createdAt[gt]".
type Query map[string]string

func NewQuery() Query {
	return Query{}
}

// Order sets the ordering key. A leading "-" sorts descending.
func (q Query) Order(key string) Query {
	q["order"] = key
	return q
}

func (q Query) Skip(n int) Query {
	q["skip"] = strconv.Itoa(n)
	return q
}

func (q Query) Limit(n int) Query {
	q["limit"] = strconv.Itoa(n)
	return q
}

// Where adds a filter on field. An empty op means equality.
func (q Query) Where(field, op, value string) Query {
	if op == "" {
		q[field] = value
		return q
	}
	q[field+"["+op+"]"] = value
	return q
}

// ContentType restricts the query to one content type. Empty ids are ignored.
func (q Query) ContentType(id string) Query {
	if id != "" {
		q["content_type"] = id
	}
	return q
}

func (q Query) Clone() Query {
	out := make(Query, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

func (q Query) Values() url.Values {
	values := url.Values{}
	for k, v := range q {
		values.Set(k, v)
	}
	return values
}
