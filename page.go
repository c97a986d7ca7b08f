package pagemd

import "context"

// DocumentWriter persists finished Markdown documents.
type DocumentWriter interface {
	// WriteDocument stores content at path so that the file either holds
	// the complete content or does not exist. Failures carry EWRITE.
	WriteDocument(ctx context.Context, path string, content []byte) error
}

// AssetStore opens asset directories next to output documents.
type AssetStore interface {
	// AssetDir returns the directory at path. The directory is created on
	// first write.
	AssetDir(path string) AssetDir
}

// Target says where one document is written.
type Target struct {
	// OutputPath overrides the derived document path when set.
	OutputPath string

	// OutputDir holds derived document paths.
	OutputDir string
}

// BatchProgress reports progress while converting a list of URLs.
type BatchProgress struct {
	URL       string
	Completed int
	Total     int
	Result    *ConversionResult
	Error     error
}

// BatchProgressFunc is called as URLs finish.
type BatchProgressFunc func(BatchProgress)

// PageConverter turns one URL into a Markdown document on disk.
type PageConverter interface {
	// Convert fetches url, extracts its content, localizes images and
	// writes the assembled document. Fetch and write failures are fatal
	// to the document; image failures are recorded in the result.
	Convert(ctx context.Context, url string, target Target) (*ConversionResult, error)
}
