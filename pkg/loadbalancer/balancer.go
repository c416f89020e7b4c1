package loadbalancer

import "sync"

// Pool hands out backend base URLs round-robin. The gateway runs with a
// single record-service backend in the default layout, but accepts more.
type Pool struct {
	backends []string
	mu       sync.Mutex
	current  int
}

func New(backends ...string) *Pool {
	return &Pool{backends: backends}
}

// Next returns the next backend URL, or "" when the pool is empty.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.backends) == 0 {
		return ""
	}
	backend := p.backends[p.current]
	p.current = (p.current + 1) % len(p.backends)
	return backend
}
