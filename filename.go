package pagemd

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxFilenameLength caps sanitized names, in characters.
const MaxFilenameLength = 80

var (
	spaceRunRe      = regexp.MustCompile(`\s+`)
	underscoreRunRe = regexp.MustCompile(`_+`)
	validExtRe      = regexp.MustCompile(`^\.[A-Za-z0-9]{1,4}$`)
)

// imageExtensions maps image content types to file extensions.
var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/pjpeg":   ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
	"image/avif":    ".avif",
}

// SanitizeFilename keeps CJK ideographs, ASCII letters, digits and
// underscores. Whitespace becomes an underscore, underscore runs collapse
// and the result is capped at MaxFilenameLength characters.
func SanitizeFilename(name string) string {
	s := spaceRunRe.ReplaceAllString(name, "_")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '_', IsCJK(r),
			r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, s)
	s = underscoreRunRe.ReplaceAllString(s, "_")
	if runes := []rune(s); len(runes) > MaxFilenameLength {
		s = string(runes[:MaxFilenameLength])
	}
	return s
}

// DocumentBaseName derives a non-empty output base name from the title,
// then from the URL host and path, then from the time.
func DocumentBaseName(title, rawURL string, now time.Time) string {
	if base := SanitizeFilename(title); base != "" {
		return base
	}

	if u, err := url.Parse(rawURL); err == nil {
		candidate := u.Host
		if p := strings.Trim(u.Path, "/"); p != "" {
			candidate += "_" + p
		}
		if candidate == "" {
			candidate = "untitled"
		}
		if base := SanitizeFilename(strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(candidate)); base != "" {
			return base
		}
	}

	return "untitled_" + now.Format("20060102_150405")
}

// ImageFilename derives a local file name for an image from its resolved
// URL. index numbers unnamed images. When the URL carries no usable
// extension, contentType picks one, defaulting to ".jpg".
func ImageFilename(resolvedURL string, index int, contentType string) string {
	var base string
	if u, err := url.Parse(resolvedURL); err == nil {
		base = path.Base(u.Path)
	}
	if base == "." || base == "/" {
		base = ""
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if !validExtRe.MatchString(ext) {
		ext = ExtensionForContentType(contentType)
	}

	name := SanitizeFilename(stem)
	if name == "" {
		name = "image_" + strconv.Itoa(index)
	}
	return name + ext
}

// ExtensionForContentType returns the file extension for an image content
// type, or ".jpg" when the type is unknown.
func ExtensionForContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ext, ok := imageExtensions[ct]; ok {
		return ext
	}
	return ".jpg"
}

// CollisionFreeName returns name, or name with "_<n>" inserted before the
// extension for the smallest n >= 1, such that exists reports it free.
func CollisionFreeName(name string, exists func(string) (bool, error)) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; ; n++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = stem + "_" + strconv.Itoa(n) + ext
	}
}

// DocumentPath returns the Markdown path for base inside dir.
func DocumentPath(dir, base string) string {
	return filepath.Join(dir, base+".md")
}

// AssetDirFor returns the asset directory that accompanies a document:
// the document path without its extension plus "_files".
func AssetDirFor(docPath string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + "_files"
}

// AssetRelativePath returns the forward-slash reference from a document to
// an asset named name in its asset directory.
func AssetRelativePath(docPath, name string) string {
	return filepath.Base(AssetDirFor(docPath)) + "/" + name
}
