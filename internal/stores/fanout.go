package stores

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"urlboard/internal/model"
	"urlboard/internal/repository"
	"urlboard/pkg/logger"
	"urlboard/pkg/network"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 8
	defaultRatePerMin  = 60
)

// Config bounds the notifier's outbound deliveries.
type Config struct {
	// Timeout applies per delivery request.
	Timeout time.Duration
	// Concurrency limits parallel deliveries across all stores.
	Concurrency int64
	// RatePerMinute limits deliveries per minute across all stores.
	RatePerMinute int
}

// FanoutNotifier delivers saved pairs to every enabled store as a signed
// webhook. Deliveries run concurrently under a weighted semaphore and a
// shared rate limiter.
type FanoutNotifier struct {
	stores  repository.StoreRepository
	clients *network.ClientFactory
	limiter *rate.Limiter
	sem     *semaphore.Weighted
	timeout time.Duration
}

// NewFanoutNotifier creates a notifier fanning out to the given store registry.
func NewFanoutNotifier(storeRepo repository.StoreRepository, clients *network.ClientFactory, cfg Config) *FanoutNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = defaultRatePerMin
	}

	return &FanoutNotifier{
		stores:  storeRepo,
		clients: clients,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute),
		sem:     semaphore.NewWeighted(cfg.Concurrency),
		timeout: cfg.Timeout,
	}
}

// Notify delivers the pair to every enabled store. It returns an error naming
// the stores whose delivery failed; zero enabled stores is a success.
func (n *FanoutNotifier) Notify(ctx context.Context, pair Pair) error {
	enabled, err := n.stores.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("list enabled stores: %w", err)
	}
	if len(enabled) == 0 {
		logger.Debug("no enabled stores to notify", "module", "stores", "type", pair.Type)
		return nil
	}

	var (
		mu     sync.Mutex
		failed []string
		wg     sync.WaitGroup
	)

	for _, store := range enabled {
		if err := n.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("acquire delivery slot: %w", err)
		}

		wg.Add(1)
		go func(store model.Store) {
			defer wg.Done()
			defer n.sem.Release(1)

			if err := n.Deliver(ctx, store, pair); err != nil {
				logger.Warn("store delivery failed",
					"module", "stores", "action", "deliver", "store", store.Name, "error", err)
				mu.Lock()
				failed = append(failed, store.Name)
				mu.Unlock()
				return
			}
			logger.Debug("store delivery succeeded",
				"module", "stores", "action", "deliver", "store", store.Name, "type", pair.Type)
		}(store)
	}

	wg.Wait()

	if len(failed) > 0 {
		return fmt.Errorf("delivery failed for stores: %s", strings.Join(failed, ", "))
	}
	return nil
}

// Deliver posts the pair to a single store endpoint. Any transport error or
// non-2xx status fails the delivery.
func (n *FanoutNotifier) Deliver(ctx context.Context, store model.Store, pair Pair) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("marshal pair: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, store.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "urlboard/1.0")
	req.Header.Set("X-Urlboard-Event", pair.Type)
	req.Header.Set("X-Urlboard-Delivery", uuid.NewString())
	if store.Secret != "" {
		req.Header.Set("X-Urlboard-Signature", "sha256="+signBody(store.Secret, body))
	}

	client := n.clients.NewHTTPClient(ctx, n.timeout)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post to %s: %w", store.Endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("store %s returned status %d", store.Name, resp.StatusCode)
	}
	return nil
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
