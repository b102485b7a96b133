// Package ratelimit limits requests per client and endpoint with token buckets.
package ratelimit

import (
	"context"
	"path"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the limit applied to a request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	limit    int
	lastSeen time.Time
}

// Limiter keeps one token bucket per client, rule and method.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter creates a limiter. A nil config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{Enabled: false}
	}
	return &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Match returns the rule for a request, or nil when the default applies.
func Match(method, urlPath string, rules []Rule) *Rule {
	for i := range rules {
		r := &rules[i]
		if r.Method != method {
			continue
		}
		if ok, _ := path.Match(r.Pattern, urlPath); ok {
			return r
		}
	}
	return nil
}

// Allow reports whether a request from clientID may proceed and consumes a
// token if so.
func (l *Limiter) Allow(clientID, urlPath, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	rule := Match(method, urlPath, l.config.Rules)
	key := clientID + " " + method + " "
	if rule != nil {
		key += rule.Pattern
	} else {
		rule = &Rule{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
		key += "*"
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucket(key, rule, now)
	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)

	info := Info{Allowed: allowed, Limit: b.limit, Remaining: max(int(tokens), 0)}
	if !allowed {
		missing := 1 - tokens
		info.RetryAfter = time.Duration(missing / float64(b.limiter.Limit()) * float64(time.Second))
	}
	return allowed, info
}

func (l *Limiter) bucket(key string, rule *Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		every := rate.Limit(float64(rule.Limit) / rule.Window.Seconds())
		b = &bucket{limiter: rate.NewLimiter(every, burst), limit: rule.Limit}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

// Prune drops buckets not used since before cutoff and returns how many
// were removed.
func (l *Limiter) Prune(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			n++
		}
	}
	return n
}

// Run prunes idle buckets every CleanupInterval until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	if !l.config.Enabled || l.config.CleanupInterval <= 0 {
		<-ctx.Done()
		return
	}
	idle := l.config.IdleTimeout
	if idle <= 0 {
		idle = time.Hour
	}

	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Prune(l.now().Add(-idle))
		case <-ctx.Done():
			return
		}
	}
}
