package convert

import (
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/bloom"
)

// Compile-time interface verification.
var _ pagemd.URLQueue = (*Queue)(nil)

// Queue is a FIFO of batch URLs with Bloom filter deduplication. Filter
// hits are confirmed against the exact set of queued URLs, so a distinct
// URL is never dropped. It is safe for concurrent use by multiple goroutines.
type Queue struct {
	mu     sync.Mutex
	seen   *bloom.Filter
	queued map[string]struct{}
	items  []string
}

// NewQueue creates a Queue sized for n expected URLs.
func NewQueue(n uint) *Queue {
	return &Queue{
		seen:   bloom.NewFilter(n, 0.001),
		queued: make(map[string]struct{}, n),
	}
}

// Push appends url to the queue. It returns false when url is not a valid
// http(s) URL or has already been queued. URLs differing only by fragment
// are duplicates.
func (q *Queue) Push(rawURL string) bool {
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.contains(u) {
		return false
	}
	q.seen.Add(u)
	q.queued[u] = struct{}{}
	q.items = append(q.items, u)
	return true
}

// Pop removes and returns the oldest URL.
func (q *Queue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false
	}
	u := q.items[0]
	q.items = q.items[1:]
	return u, true
}

// Len returns the number of URLs waiting in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Seen returns true if the URL has been queued before.
func (q *Queue) Seen(rawURL string) bool {
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.contains(u)
}

// contains reports whether u was pushed. Callers hold q.mu.
func (q *Queue) contains(u string) bool {
	if !q.seen.Test(u) {
		return false
	}
	_, ok := q.queued[u]
	return ok
}

// NormalizeURL trims rawURL and strips its fragment. Anything other than
// an absolute http or https URL is rejected with EINVALID.
func NormalizeURL(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if i := strings.Index(s, "#"); i != -1 {
		s = s[:i]
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", pagemd.Errorf(pagemd.EINVALID, "invalid URL %q", rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", pagemd.Errorf(pagemd.EINVALID, "unsupported URL %q: only http and https are accepted", rawURL)
	}
	return u.String(), nil
}
