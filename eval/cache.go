package eval

import "strings"

// providerCache memoizes a single render's provider.Resolve calls keyed
// by namespace/field/attribute-path, so a field referenced twice in one
// template (e.g. once directly and once inside a combine clause) only
// hits the provider once. Scoped to one render; never shared across
// files, matching the registry's read-only-after-startup model
// (spec.md §5).
type providerCache struct {
	hits map[string]cachedResolve
}

type cachedResolve struct {
	values         []string
	consumedDefault bool
}

func newProviderCache() *providerCache {
	return &providerCache{hits: make(map[string]cachedResolve)}
}

func cacheKey(namespace, field string, attrs []string) string {
	var b strings.Builder
	b.WriteString(namespace)
	b.WriteByte(0)
	b.WriteString(field)
	for _, a := range attrs {
		b.WriteByte(0)
		b.WriteString(a)
	}
	return b.String()
}

func (c *providerCache) get(namespace, field string, attrs []string) (cachedResolve, bool) {
	v, ok := c.hits[cacheKey(namespace, field, attrs)]
	return v, ok
}

func (c *providerCache) put(namespace, field string, attrs []string, r cachedResolve) {
	c.hits[cacheKey(namespace, field, attrs)] = r
}
