package hubspot

import (
	"strconv"
	"strings"
)

// Query parameter names understood by the CRM object endpoints.
const (
	QueryLimit                 = "limit"
	QueryAfter                 = "after"
	QueryProperties            = "properties"
	QueryPropertiesWithHistory = "propertiesWithHistory"
	QueryAssociations          = "associations"
	QueryArchived              = "archived"
	QueryEmail                 = "email"
)

// QueryBuilder writes a raw query string one segment at a time. The first
// segment is prefixed with '?', every following one with '&'. List values are
// comma-joined and written as-is.
type QueryBuilder struct {
	sb strings.Builder
}

// NewQueryBuilder returns an empty builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Begun reports whether at least one segment has been written.
func (q *QueryBuilder) Begun() bool {
	return q.sb.Len() > 0
}

func (q *QueryBuilder) write(name, value string) {
	if q.Begun() {
		q.sb.WriteByte('&')
	} else {
		q.sb.WriteByte('?')
	}

	q.sb.WriteString(name)
	q.sb.WriteByte('=')
	q.sb.WriteString(value)
}

// Param writes name=value. An empty value writes nothing.
func (q *QueryBuilder) Param(name, value string) *QueryBuilder {
	if value != "" {
		q.write(name, value)
	}

	return q
}

// List writes name=v1,v2,... An empty list writes nothing.
func (q *QueryBuilder) List(name string, values []string) *QueryBuilder {
	if len(values) > 0 {
		q.write(name, strings.Join(values, ","))
	}

	return q
}

// Paging writes the limit and after cursor. A limit <= 0 and an empty cursor
// are treated as absent.
func (q *QueryBuilder) Paging(limit int, after string) *QueryBuilder {
	if limit > 0 {
		q.write(QueryLimit, strconv.Itoa(limit))
	}

	return q.Param(QueryAfter, after)
}

// Archived always writes the archived flag, whatever its value.
func (q *QueryBuilder) Archived(archived bool) *QueryBuilder {
	q.write(QueryArchived, strconv.FormatBool(archived))

	return q
}

// String returns the query assembled so far, or "" when nothing was written.
func (q *QueryBuilder) String() string {
	return q.sb.String()
}

// BuildPagingQuery returns only the pagination part of a query.
func BuildPagingQuery(limit int, after string) string {
	return NewQueryBuilder().Paging(limit, after).String()
}

// BuildQuery assembles the full object query. Groups are emitted in a fixed
// order: limit, after, properties, propertiesWithHistory, associations and
// finally archived, which is always present.
func BuildQuery(limit int, after string, properties, propertiesWithHistory, associations []string, archived bool) string {
	return NewQueryBuilder().
		Paging(limit, after).
		List(QueryProperties, properties).
		List(QueryPropertiesWithHistory, propertiesWithHistory).
		List(QueryAssociations, associations).
		Archived(archived).
		String()
}
