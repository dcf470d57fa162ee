package viewer

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lukaszgryglicki/wisdom3d/internal/wisdom3d"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	coverTTL     = 30 * time.Minute
	coverTimeout = 10 * time.Second
)

// covers fetches book covers in the background and keeps the decoded
// images in a TTL cache. A texture lives as long as its cache entry; textures
// are made and freed on the frame loop only.
type covers struct {
	cache    *cache.Cache
	client   *http.Client
	mu       sync.Mutex
	inflight map[string]bool
	evicted  []string

	textures   map[string]*ebiten.Image // frame loop only
	newTexture func(image.Image) *ebiten.Image
	free       func(*ebiten.Image)
}

func newCovers(ttl time.Duration) *covers {
	c := &covers{
		cache:      cache.New(ttl, ttl/2),
		client:     &http.Client{Timeout: coverTimeout},
		inflight:   make(map[string]bool),
		textures:   make(map[string]*ebiten.Image),
		newTexture: ebiten.NewImageFromImage,
		free:       (*ebiten.Image).Deallocate,
	}
	// called from the janitor goroutine, so only queue the url
	c.cache.OnEvicted(func(url string, _ interface{}) {
		c.mu.Lock()
		c.evicted = append(c.evicted, url)
		c.mu.Unlock()
	})
	return c
}

// Get returns the cover when it is ready and schedules a fetch otherwise.
func (c *covers) Get(url string) (*ebiten.Image, bool) {
	c.prune()
	if url == "" {
		return nil, false
	}
	if v, ok := c.cache.Get(url); ok {
		if tex, ok := c.textures[url]; ok {
			return tex, true
		}
		img, ok := v.(image.Image)
		if !ok || img == nil {
			return nil, false
		}
		tex := c.newTexture(img)
		c.textures[url] = tex
		return tex, true
	}
	c.drop(url)

	c.mu.Lock()
	if c.inflight[url] {
		c.mu.Unlock()
		return nil, false
	}
	c.inflight[url] = true
	c.mu.Unlock()

	go c.fetch(url)
	return nil, false
}

// prune frees textures whose cache entries expired.
func (c *covers) prune() {
	c.mu.Lock()
	evicted := c.evicted
	c.evicted = nil
	c.mu.Unlock()
	for _, url := range evicted {
		c.drop(url)
	}
}

func (c *covers) drop(url string) {
	if tex, ok := c.textures[url]; ok {
		c.free(tex)
		delete(c.textures, url)
	}
}

func (c *covers) fetch(url string) {
	defer func() {
		c.mu.Lock()
		delete(c.inflight, url)
		c.mu.Unlock()
	}()
	img, err := c.download(url)
	if err != nil {
		wisdom3d.Log("covers").Warn("cover not loaded", zap.String("url", url), zap.Error(err))
		// remember the failure so it is not retried every frame
		c.cache.Set(url, nil, cache.DefaultExpiration)
		return
	}
	c.cache.Set(url, img, cache.DefaultExpiration)
}

func (c *covers) download(url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(context.Background(), coverTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	return img, err
}
