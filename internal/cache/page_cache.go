// Package cache implements the rendered-page cache for feed responses.
// Entries are keyed by request URI, so each page number of a feed caches
// independently. Invalidation is explicit: Clear drops every entry under
// the prefix.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "pagecache:"

// CachedPage is the stored form of a rendered response.
type CachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type PageCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewPageCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *PageCache {
	return &PageCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Get returns the cached page for a key, or nil on a miss.
func (c *PageCache) Get(ctx context.Context, key string) (*CachedPage, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached page %s: %w", key, err)
	}

	var page CachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to decode cached page %s: %w", key, err)
	}
	return &page, nil
}

// Set stores a rendered page under the key for the configured TTL.
func (c *PageCache) Set(ctx context.Context, key string, page *CachedPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page %s: %w", key, err)
	}
	return nil
}

// Clear invalidates every cached page immediately.
func (c *PageCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached pages: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to drop cached pages: %w", err)
	}
	return nil
}

// Middleware serves GET requests from the cache and stores successful
// responses on a miss. There is no per-user variation: every visitor
// within the window sees the same bytes.
func (c *PageCache) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := ctx.Request.URL.RequestURI()

		cached, err := c.Get(ctx.Request.Context(), key)
		if err != nil {
			// Serve uncached rather than failing the request.
			c.logger.Warn("page cache read failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		if cached != nil {
			ctx.Data(cached.Status, cached.ContentType, cached.Body)
			ctx.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = recorder

		ctx.Next()

		if recorder.Status() != http.StatusOK {
			return
		}
		page := &CachedPage{
			Status:      recorder.Status(),
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		}
		if err := c.Set(ctx.Request.Context(), key, page); err != nil {
			c.logger.Warn("page cache write failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

// bodyRecorder duplicates the response body so it can be cached after
// being written to the client.
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
