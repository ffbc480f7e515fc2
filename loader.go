package webapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"
)

// maxResourceSize caps a fetched text resource.
const maxResourceSize = 8 << 20

// Loader fetches text resources such as svg markup. Concurrent fetches of
// the same address share one request.
type Loader struct {
	base   *url.URL
	client *http.Client
	group  singleflight.Group
}

// NewLoader creates a loader resolving relative addresses against baseURL.
// An empty baseURL accepts absolute addresses only.
func NewLoader(baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	l := &Loader{client: client}
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			l.base = u
		}
	}
	return l
}

// Fetch returns the body of addr as text.
func (l *Loader) Fetch(ctx context.Context, addr string) (string, error) {
	target, err := l.resolve(addr)
	if err != nil {
		return "", err
	}
	v, err, _ := l.group.Do(target, func() (any, error) {
		return l.get(ctx, target)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (l *Loader) resolve(addr string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("parse resource address %q: %w", addr, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if l.base == nil {
		return "", fmt.Errorf("relative resource address %q without base url", addr)
	}
	return l.base.ResolveReference(u).String(), nil
}

func (l *Loader) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", target, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", target, resp.Status)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, io.LimitReader(resp.Body, maxResourceSize)); err != nil {
		return "", fmt.Errorf("read %s: %w", target, err)
	}
	return b.String(), nil
}

// LoadText fetches addr in the background and runs apply with the text on
// the runtime's thread. The result is dropped if e is no longer alive by
// then, or if the fetch fails.
func (r *Runtime) LoadText(e *Element, addr string, apply func(string)) {
	loader := r.loader
	if loader == nil {
		r.log.Errorf("load %s for %s: no loader", addr, e.id)
		return
	}
	go func() {
		text, err := loader.Fetch(context.Background(), addr)
		r.Post(func() {
			if err != nil {
				r.log.Errorf("load %s for %s: %v", addr, e.id, err)
				return
			}
			if !e.Alive() {
				r.log.Debugf("dropping %s for detached %s", addr, e.id)
				return
			}
			apply(text)
		})
	}()
}
