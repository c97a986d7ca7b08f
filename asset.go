package pagemd

import "context"

// AssetReference maps one unique image reference to its local copy.
type AssetReference struct {
	// OriginalRef is the src value exactly as written in the markup.
	OriginalRef string `json:"originalRef"`

	// ResolvedURL is OriginalRef resolved against the page URL.
	ResolvedURL string `json:"resolvedUrl"`

	// LocalName is the file name inside the asset directory.
	LocalName string `json:"localName"`

	// RelativePath is the forward-slash path written into the output.
	RelativePath string `json:"relativePath"`

	Size int    `json:"size"`
	Hash string `json:"hash"`
}

// Image is a downloaded image payload.
type Image struct {
	Data        []byte
	ContentType string
}

// ImageFetcher downloads image bytes.
type ImageFetcher interface {
	// FetchImage downloads the image at url. Failures carry ETIMEOUT,
	// EHTTP or ENETWORK codes.
	FetchImage(ctx context.Context, url string) (*Image, error)
}

// AssetDir is a directory that receives downloaded assets.
// Implementations create the directory on first write.
type AssetDir interface {
	// Path returns the directory location.
	Path() string

	// Exists reports whether name is already taken inside the directory.
	Exists(name string) (bool, error)

	// WriteFile stores data under name.
	WriteFile(name string, data []byte) error
}

type refererKey struct{}

// WithReferer returns a context carrying the page URL that image
// requests should present as their referer.
func WithReferer(ctx context.Context, pageURL string) context.Context {
	return context.WithValue(ctx, refererKey{}, pageURL)
}

// RefererFromContext returns the referer stored by WithReferer, if any.
func RefererFromContext(ctx context.Context) string {
	s, _ := ctx.Value(refererKey{}).(string)
	return s
}
