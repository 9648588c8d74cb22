package translate

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"horse.fit/homer/internal/capability"
)

// HandleCache memoizes provisioned translator handles keyed by the ordered
// (source, target) language pair. Provisioning may trigger a model download,
// so concurrent requests for the same pair are collapsed into one attempt and
// a handle is only cached after it reports ready.
type HandleCache struct {
	translator capability.TranslatorCapability
	onProgress capability.ProgressFunc

	group   singleflight.Group
	mu      sync.Mutex
	handles map[string]capability.TranslatorHandle
}

func NewHandleCache(translator capability.TranslatorCapability, onProgress capability.ProgressFunc) *HandleCache {
	return &HandleCache{
		translator: translator,
		onProgress: onProgress,
		handles:    make(map[string]capability.TranslatorHandle),
	}
}

func pairKey(sourceLang, targetLang string) string {
	return sourceLang + ">" + targetLang
}

// GetOrCreate returns the cached handle for a pair, provisioning it on first
// use. A failed provisioning is never cached; the next call retries from
// scratch. (A,B) and (B,A) are independent entries.
func (c *HandleCache) GetOrCreate(ctx context.Context, sourceLang, targetLang string) (capability.TranslatorHandle, error) {
	key := pairKey(sourceLang, targetLang)

	c.mu.Lock()
	if handle, ok := c.handles[key]; ok {
		c.mu.Unlock()
		return handle, nil
	}
	c.mu.Unlock()

	// The context of the first caller drives the shared provisioning attempt;
	// later callers for the same key await its outcome.
	result, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		if handle, ok := c.handles[key]; ok {
			c.mu.Unlock()
			return handle, nil
		}
		c.mu.Unlock()

		handle, err := c.translator.Create(ctx, sourceLang, targetLang, c.onProgress)
		if err != nil {
			return nil, &capability.ProvisionError{Capability: "translator", Err: err}
		}
		if err := handle.Ready(ctx); err != nil {
			return nil, &capability.ProvisionError{Capability: "translator", Err: err}
		}

		c.mu.Lock()
		c.handles[key] = handle
		c.mu.Unlock()
		return handle, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(capability.TranslatorHandle), nil
}

// Invalidate drops the cached handle for a pair, if any.
func (c *HandleCache) Invalidate(sourceLang, targetLang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handles, pairKey(sourceLang, targetLang))
}

// Len reports the number of cached handles.
func (c *HandleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}
