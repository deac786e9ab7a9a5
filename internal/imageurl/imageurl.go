// Package imageurl turns the image reference stored on a product into a URL
// the storefront can serve.
package imageurl

import (
	"regexp"
	"strings"
)

const (
	DefaultImage  = "/assets/General Photo1.jpg"
	UploadsPrefix = "/attached_assets/"
	AssetsPrefix  = "/assets/"
)

// uploadedName matches names produced by the upload endpoint, which start
// with a millisecond timestamp.
var uploadedName = regexp.MustCompile(`\d{13}-`)

type Resolver struct {
	DefaultImage  string
	UploadsPrefix string
	AssetsPrefix  string
	// Keywords route legacy bare filenames to the uploads directory.
	Keywords []string
}

func Default() Resolver {
	return Resolver{
		DefaultImage:  DefaultImage,
		UploadsPrefix: UploadsPrefix,
		AssetsPrefix:  AssetsPrefix,
		Keywords:      []string{"matcha"},
	}
}

// Resolve applies the rules in order and returns the first match.
func (r Resolver) Resolve(ref string) string {
	switch {
	case ref == "":
		return r.DefaultImage
	case strings.HasPrefix(ref, "/"),
		strings.HasPrefix(ref, "http"),
		strings.HasPrefix(ref, "data:"):
		return ref
	case uploadedName.MatchString(ref):
		return r.UploadsPrefix + ref
	case r.hasKeyword(ref):
		return r.UploadsPrefix + ref
	default:
		return r.AssetsPrefix + ref
	}
}

func (r Resolver) hasKeyword(ref string) bool {
	lower := strings.ToLower(ref)
	for _, kw := range r.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Resolve uses the default resolver.
func Resolve(ref string) string {
	return Default().Resolve(ref)
}
