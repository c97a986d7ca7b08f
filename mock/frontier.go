package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.URLQueue = (*URLQueue)(nil)

// URLQueue is a mock implementation of pagemd.URLQueue.
type URLQueue struct {
	PushFn func(url string) bool
	PopFn  func() (string, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (q *URLQueue) Push(url string) bool {
	return q.PushFn(url)
}

func (q *URLQueue) Pop() (string, bool) {
	return q.PopFn()
}

func (q *URLQueue) Len() int {
	return q.LenFn()
}

func (q *URLQueue) Seen(url string) bool {
	return q.SeenFn(url)
}

var _ pagemd.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of pagemd.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
