package convert

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/goquery"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// Materializer downloads the images referenced by a content region into
// the document's asset directory and rewrites their sources.
type Materializer struct {
	Images      pagemd.ImageFetcher
	Store       pagemd.AssetStore
	RateLimiter pagemd.DomainLimiter
	Concurrency int
	ConvertWebP bool
	Logger      *slog.Logger

	// mu serializes name probing and writing so concurrent downloads,
	// from one document or several, never claim the same file name.
	mu sync.Mutex
}

// Materialized is the outcome of localizing one content region.
type Materialized struct {
	HTML   string
	Dir    string
	Assets []pagemd.AssetReference
	Failed map[string]error
}

type assetOutcome struct {
	ref pagemd.AssetReference
	err error
}

// Materialize localizes every distinct image source in fragment for the
// document at docPath. Each distinct source is fetched once. A source that
// fails is recorded in Failed and left unchanged in the returned HTML.
func (m *Materializer) Materialize(ctx context.Context, pageURL, docPath, fragment string) (*Materialized, error) {
	frag, err := goquery.ParseFragment(fragment)
	if err != nil {
		return nil, err
	}
	frag.PromoteLazyImages()

	out := &Materialized{Failed: make(map[string]error)}
	sources := frag.ImageSources()
	if len(sources) == 0 {
		out.HTML, err = frag.HTML()
		return out, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "invalid page URL %q", pageURL)
	}

	dir := m.Store.AssetDir(pagemd.AssetDirFor(docPath))
	out.Dir = dir.Path()

	concurrency := m.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]assetOutcome, len(sources))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, src := range sources {
		g.Go(func() error {
			outcomes[i] = m.materializeOne(ctx, base, docPath, dir, i+1, src)
			return nil
		})
	}
	_ = g.Wait()

	mapping := make(map[string]string, len(sources))
	for i, o := range outcomes {
		if o.err != nil {
			out.Failed[sources[i]] = o.err
			m.logger().Warn("asset failed", "src", sources[i], "err", o.err)
			continue
		}
		mapping[o.ref.OriginalRef] = o.ref.RelativePath
		out.Assets = append(out.Assets, o.ref)
	}

	frag.RewriteImageSources(mapping)
	out.HTML, err = frag.HTML()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Materializer) materializeOne(ctx context.Context, base *url.URL, docPath string, dir pagemd.AssetDir, index int, src string) assetOutcome {
	ref, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return assetOutcome{err: pagemd.Errorf(pagemd.EASSET, "invalid image source %q", src)}
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return assetOutcome{err: pagemd.Errorf(pagemd.EASSET, "unsupported image source %q", src)}
	}
	abs := resolved.String()

	if err := waitHost(ctx, m.RateLimiter, abs); err != nil {
		return assetOutcome{err: pagemd.Errorf(pagemd.EASSET, "%s: %v", abs, err)}
	}

	img, err := m.Images.FetchImage(pagemd.WithReferer(ctx, base.String()), abs)
	if err != nil {
		return assetOutcome{err: pagemd.Errorf(pagemd.EASSET, "%s: %s", abs, assetReason(err))}
	}

	data, contentType := img.Data, img.ContentType
	name := pagemd.ImageFilename(abs, index, contentType)
	if m.ConvertWebP && isWebP(data) {
		if converted, err := webpToPNG(data); err == nil {
			data = converted
			name = strings.TrimSuffix(name, path.Ext(name)) + ".png"
		} else {
			m.logger().Debug("webp conversion failed, keeping original", "url", abs, "err", err)
		}
	}

	m.mu.Lock()
	name, err = pagemd.CollisionFreeName(name, dir.Exists)
	if err == nil {
		err = dir.WriteFile(name, data)
	}
	m.mu.Unlock()
	if err != nil {
		return assetOutcome{err: pagemd.Errorf(pagemd.EASSET, "%s: %s", abs, assetReason(err))}
	}

	return assetOutcome{ref: pagemd.AssetReference{
		OriginalRef:  src,
		ResolvedURL:  abs,
		LocalName:    name,
		RelativePath: pagemd.AssetRelativePath(docPath, name),
		Size:         len(data),
		Hash:         ContentHash(data),
	}}
}

func (m *Materializer) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.Logger
}

// ContentHash returns the hex xxhash of data.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func assetReason(err error) string {
	if pagemd.ErrorCode(err) == pagemd.EINTERNAL {
		return err.Error()
	}
	return pagemd.ErrorMessage(err)
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

func webpToPNG(data []byte) ([]byte, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
