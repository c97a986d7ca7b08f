package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// LazySourceAttrs hold the real image URL on lazy-loading pages, in
// priority order.
var LazySourceAttrs = []string{"data-src", "data-original", "data-actualsrc"}

// Fragment is a parsed content region whose image sources can be listed
// and rewritten.
type Fragment struct {
	raw     string
	doc     *goquery.Document
	changed bool
}

// ParseFragment parses a content region.
func ParseFragment(html string) (*Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Fragment{raw: html, doc: doc}, nil
}

// PromoteLazyImages copies a lazy-loading attribute into src for images
// whose src is missing, empty or an inline data placeholder. It returns
// the number of images changed.
func (f *Fragment) PromoteLazyImages() int {
	var n int
	f.doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src != "" && !isDataURI(src) {
			return
		}
		for _, attr := range LazySourceAttrs {
			if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
				img.SetAttr("src", v)
				n++
				return
			}
		}
	})
	if n > 0 {
		f.changed = true
	}
	return n
}

// ImageSources returns the distinct src values of all images in document
// order. Inline data URIs, fragment references and empty values are
// skipped.
func (f *Fragment) ImageSources() []string {
	seen := make(map[string]bool)
	var sources []string
	f.doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if SkipImageSource(src) || seen[src] {
			return
		}
		seen[src] = true
		sources = append(sources, src)
	})
	return sources
}

// RewriteImageSources replaces every src attribute whose value is a key
// of mapping with the mapped value. Other attributes and text are left
// alone. It returns the number of attributes rewritten.
func (f *Fragment) RewriteImageSources(mapping map[string]string) int {
	var n int
	f.doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		if local, ok := mapping[img.AttrOr("src", "")]; ok {
			img.SetAttr("src", local)
			n++
		}
	})
	if n > 0 {
		f.changed = true
	}
	return n
}

// HTML serializes the fragment. An unchanged fragment is returned exactly
// as parsed.
func (f *Fragment) HTML() (string, error) {
	if !f.changed {
		return f.raw, nil
	}
	return f.doc.Find("body").Html()
}

// SkipImageSource reports whether src names no downloadable image.
func SkipImageSource(src string) bool {
	src = strings.TrimSpace(src)
	return src == "" || strings.HasPrefix(src, "#") || isDataURI(src)
}

func isDataURI(src string) bool {
	return len(src) >= 5 && strings.EqualFold(src[:5], "data:")
}
