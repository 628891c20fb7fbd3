package client

import (
	"net/url"
	"slices"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// objectPath joins an API root, an object kind and escaped path segments.
func objectPath(root string, kind hubspot.Pather, segments ...string) string {
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, root, kind.ToPath())

	for _, segment := range segments {
		parts = append(parts, url.PathEscape(segment))
	}

	return strings.Join(parts, "/")
}

// fieldNames returns the names declared on T followed by extra.
func fieldNames[T any](extra []string) []string {
	return slices.Concat(hubspot.FieldNames[T](), extra)
}
