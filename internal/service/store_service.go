//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"urlboard/internal/events"
	"urlboard/internal/model"
	"urlboard/internal/repository"
	"urlboard/internal/stores"
	"urlboard/pkg/logger"
)

// Deliverer performs a single delivery to one store endpoint. It is satisfied
// by the fan-out notifier and kept narrow so Ping is testable without it.
type Deliverer interface {
	Deliver(ctx context.Context, store model.Store, pair stores.Pair) error
}

// StoreService manages the registry of downstream store endpoints. Unlike
// records, the registry is ordinary CRUD: unknown identifiers are ErrNotFound.
type StoreService interface {
	List(ctx context.Context) ([]model.Store, error)
	Get(ctx context.Context, id int64) (*model.Store, error)
	Create(ctx context.Context, name, endpoint, secret string, enabled bool) (*model.Store, error)
	Update(ctx context.Context, id int64, name, endpoint, secret string, enabled bool) (*model.Store, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context, id int64) error
}

type storeService struct {
	stores    repository.StoreRepository
	deliverer Deliverer
	events    events.Publisher
}

// NewStoreService creates a store registry service.
func NewStoreService(storeRepo repository.StoreRepository, deliverer Deliverer, publisher events.Publisher) StoreService {
	return &storeService{stores: storeRepo, deliverer: deliverer, events: publisher}
}

func (s *storeService) List(ctx context.Context) ([]model.Store, error) {
	return s.stores.List(ctx)
}

func (s *storeService) Get(ctx context.Context, id int64) (*model.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return store, nil
}

func (s *storeService) Create(ctx context.Context, name, endpoint, secret string, enabled bool) (*model.Store, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedName == "" || !isValidURL(trimmedEndpoint) {
		return nil, ErrInvalid
	}

	store, err := s.stores.Create(ctx, model.Store{
		Name:     trimmedName,
		Endpoint: trimmedEndpoint,
		Secret:   secret,
		Enabled:  enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.publish(ctx, events.TopicStoreCreated, events.StoreCreated{Store: store})
	return store, nil
}

func (s *storeService) Update(ctx context.Context, id int64, name, endpoint, secret string, enabled bool) (*model.Store, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedName == "" || !isValidURL(trimmedEndpoint) {
		return nil, ErrInvalid
	}

	store := model.Store{
		ID:       id,
		Name:     trimmedName,
		Endpoint: trimmedEndpoint,
		Secret:   secret,
		Enabled:  enabled,
	}
	if err := s.stores.Update(ctx, store); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update store: %w", err)
	}

	updated, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refetch store: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.publish(ctx, events.TopicStoreUpdated, events.StoreUpdated{Store: updated})
	return updated, nil
}

func (s *storeService) Delete(ctx context.Context, id int64) error {
	if err := s.stores.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete store: %w", err)
	}
	s.publish(ctx, events.TopicStoreDeleted, events.StoreDeleted{StoreID: id})
	return nil
}

// Ping performs a synchronous test delivery to one store.
func (s *storeService) Ping(ctx context.Context, id int64) error {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get store: %w", err)
	}
	if store == nil {
		return ErrNotFound
	}

	if err := s.deliverer.Deliver(ctx, *store, stores.Pair{Type: "ping", URL: ""}); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

// publish emits best-effort events: failures never fail the request.
func (s *storeService) publish(ctx context.Context, topic string, event any) {
	if err := s.events.Publish(ctx, topic, event); err != nil {
		logger.Warn("event publish failed", "module", "service", "topic", topic, "error", err)
	}
}

func isValidURL(value string) bool {
	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
