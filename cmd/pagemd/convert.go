package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/convert"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no URLs to convert. Pass URLs, -f FILE or --sitemap URL.")
		return pagemd.Errorf(pagemd.EINVALID, "no URLs to convert")
	}

	runner := &convert.Runner{
		Pages:       deps.Pages,
		History:     deps.History,
		RateLimiter: deps.RateLimiter,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}

	progress := func(p pagemd.BatchProgress) {
		fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", p.Completed, p.Total, p.URL)
		if p.Error != nil {
			fmt.Fprintf(deps.Stdout, "  fail: %s\n", describe(p.Error))
			return
		}
		fmt.Fprintf(deps.Stdout, "  ok: %s (%d images", p.Result.OutputPath, len(p.Result.Assets))
		if n := len(p.Result.FailedAssets); n > 0 {
			fmt.Fprintf(deps.Stdout, ", %d failed", n)
		}
		fmt.Fprintln(deps.Stdout, ")")
	}

	target := pagemd.Target{OutputPath: c.Output, OutputDir: c.Dir}
	result, err := runner.Run(deps.Ctx, urls, target, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nDone: success %d/%d, failed %d\n", len(result.Succeeded), result.Total, len(result.Failed))
	for _, f := range result.Failed {
		fmt.Fprintf(deps.Stdout, "  - %s: %s\n", f.URL, describe(f.Err))
	}

	if len(result.Succeeded) == 0 {
		return pagemd.Errorf(pagemd.EINTERNAL, "all %d URLs failed", result.Total)
	}
	return nil
}

// collectURLs gathers URLs from arguments, the URL file and the sitemap,
// in that order.
func (c *ConvertCmd) collectURLs(deps *Dependencies) ([]string, error) {
	urls := append([]string(nil), c.URLs...)

	if c.File != "" {
		lines, err := readURLFile(c.File)
		if err != nil {
			return nil, err
		}
		urls = append(urls, lines...)
	}

	if c.Sitemap != "" {
		var filter *pagemd.URLFilter
		if c.Include != "" {
			re, err := regexp.Compile(c.Include)
			if err != nil {
				return nil, pagemd.Errorf(pagemd.EINVALID, "invalid include pattern %q: %v", c.Include, err)
			}
			filter = &pagemd.URLFilter{Include: []*regexp.Regexp{re}}
		}
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemap\n", len(found))
		urls = append(urls, found...)
	}

	return urls, nil
}

// readURLFile returns the non-blank lines of path that do not start
// with "#".
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "cannot read URL file: %v", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "cannot read URL file: %v", err)
	}
	return urls, nil
}
