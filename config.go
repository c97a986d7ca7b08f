package pagemd

import "time"

// DefaultUserAgent is a desktop Chrome user agent. Many sites serve
// reduced markup to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds the settings threaded through a conversion run.
type Config struct {
	// OutputDir receives documents and their asset directories.
	OutputDir string

	// Timeout bounds each page and image request.
	Timeout time.Duration

	UserAgent string

	// AssetConcurrency bounds parallel image downloads per document.
	AssetConcurrency int

	// AssetRatePerHost limits image requests per second to one host.
	AssetRatePerHost float64

	// PageRatePerHost limits page requests per second to one host during
	// a batch. Zero disables the limit.
	PageRatePerHost float64

	// Retries is the number of extra page fetch attempts after a
	// timeout or network failure.
	Retries int

	// ConvertWebP re-encodes WebP images as PNG.
	ConvertWebP bool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		OutputDir:        "./projects",
		Timeout:          30 * time.Second,
		UserAgent:        DefaultUserAgent,
		AssetConcurrency: 4,
		AssetRatePerHost: 2,
		PageRatePerHost:  1,
		Retries:          2,
		ConvertWebP:      true,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c Config) Validate() error {
	switch {
	case c.OutputDir == "":
		return Errorf(EINVALID, "output directory required")
	case c.Timeout <= 0:
		return Errorf(EINVALID, "timeout must be positive")
	case c.UserAgent == "":
		return Errorf(EINVALID, "user agent required")
	case c.AssetConcurrency < 1:
		return Errorf(EINVALID, "asset concurrency must be at least 1")
	case c.AssetRatePerHost <= 0:
		return Errorf(EINVALID, "asset rate must be positive")
	case c.PageRatePerHost < 0:
		return Errorf(EINVALID, "page rate must not be negative")
	case c.Retries < 0:
		return Errorf(EINVALID, "retries must not be negative")
	}
	return nil
}
