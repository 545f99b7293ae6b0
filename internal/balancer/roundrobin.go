package balancer

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// RoundRobin rotates over the configured wallet-backend upstreams.
type RoundRobin struct {
	mu        sync.Mutex
	upstreams []*url.URL
	idx       int
}

// NewRoundRobin parses a comma-separated upstream list. An empty list
// is valid and yields a balancer with no upstreams (proxying disabled).
func NewRoundRobin(raw string) (*RoundRobin, error) {
	rr := &RoundRobin{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		u, err := url.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("invalid upstream %q: %w", p, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("upstream %q must be an absolute URL", p)
		}
		rr.upstreams = append(rr.upstreams, u)
	}
	return rr, nil
}

// Next returns the next upstream in rotation, or nil when none are
// configured.
func (rr *RoundRobin) Next() *url.URL {
	if rr == nil || len(rr.upstreams) == 0 {
		return nil
	}
	rr.mu.Lock()
	defer rr.mu.Unlock()
	u := rr.upstreams[rr.idx%len(rr.upstreams)]
	rr.idx++
	return u
}

func (rr *RoundRobin) Count() int {
	if rr == nil {
		return 0
	}
	return len(rr.upstreams)
}
