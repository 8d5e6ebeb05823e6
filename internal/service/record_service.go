//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"urlboard/internal/allowlist"
	"urlboard/internal/events"
	"urlboard/internal/model"
	"urlboard/internal/repository"
	"urlboard/internal/stores"
	"urlboard/pkg/logger"
)

// RecordService implements the save, delete and list operations over URL
// records. Save is an upsert keyed by the presence of an identifier, not by
// key uniqueness.
type RecordService interface {
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, id int64) (*model.Record, error)
	Save(ctx context.Context, key, value, rawID string) (*model.Record, error)
	Delete(ctx context.Context, rawID string) error
	Import(ctx context.Context, items []RecordImport) (ImportResult, error)
}

// RecordImport is one entry of a bulk import payload.
type RecordImport struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ImportResult reports how an import payload was handled.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type recordService struct {
	records  repository.RecordRepository
	notifier stores.Notifier
	events   events.Publisher
	allowed  allowlist.AllowList
}

// NewRecordService creates a record service. The allow-list is parsed once at
// process start and injected here; the notifier is invoked synchronously on
// every successful save.
func NewRecordService(records repository.RecordRepository, notifier stores.Notifier, publisher events.Publisher, allowed allowlist.AllowList) RecordService {
	return &recordService{
		records:  records,
		notifier: notifier,
		events:   publisher,
		allowed:  allowed,
	}
}

func (s *recordService) List(ctx context.Context) ([]model.Record, error) {
	return s.records.List(ctx)
}

func (s *recordService) Get(ctx context.Context, id int64) (*model.Record, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// Save validates the key against the allow-list, then creates a record when
// rawID is empty or updates the record's value when it is not. An update
// matching no record is a deliberate no-op that still succeeds; in that case
// (and in the create case) the returned record is what was persisted, nil for
// the no-op path. The notifier always receives the effective key: the stored
// record's key after an update hit, the lowercased input key otherwise.
func (s *recordService) Save(ctx context.Context, key, value, rawID string) (*model.Record, error) {
	if !s.allowed.Allows(key) {
		return nil, ErrKeyNotAllowed
	}

	lowered := strings.ToLower(key)
	effectiveKey := lowered
	var saved *model.Record

	if rawID != "" {
		// An identifier that does not parse gets the same treatment as an
		// unknown one: no mutation, still a success.
		if id, err := strconv.ParseInt(rawID, 10, 64); err == nil {
			switch err := s.records.UpdateValue(ctx, id, value); {
			case err == nil:
				record, err := s.records.GetByID(ctx, id)
				if err != nil {
					return nil, fmt.Errorf("refetch record: %w", err)
				}
				if record != nil {
					effectiveKey = record.URLKey
					saved = record
					s.publish(ctx, events.TopicRecordSaved, events.RecordSaved{Record: record})
				}
			case errors.Is(err, sql.ErrNoRows):
				// idempotent no-op
			default:
				return nil, fmt.Errorf("update record: %w", err)
			}
		}
	} else {
		record, err := s.records.Create(ctx, lowered, value)
		if err != nil {
			return nil, fmt.Errorf("create record: %w", err)
		}
		effectiveKey = record.URLKey
		saved = record
		s.publish(ctx, events.TopicRecordSaved, events.RecordSaved{Record: record, Created: true})
	}

	// Notifier failures are not caught here: they fail the save request.
	if err := s.notifier.Notify(ctx, stores.Pair{Type: effectiveKey, URL: value}); err != nil {
		return nil, fmt.Errorf("notify stores: %w", err)
	}

	return saved, nil
}

// Delete removes the record with the given identifier. An empty, unparseable
// or unknown identifier is not an error: deletion is idempotent and always
// succeeds.
func (s *recordService) Delete(ctx context.Context, rawID string) error {
	if rawID == "" {
		return nil
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil
	}

	switch err := s.records.Delete(ctx, id); {
	case err == nil:
		s.publish(ctx, events.TopicRecordDeleted, events.RecordDeleted{RecordID: id})
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return fmt.Errorf("delete record: %w", err)
	}
}

// Import bulk-creates records for allow-listed keys and skips the rest. As an
// administrative load it does not invoke the notifier; record events are still
// published per created record.
func (s *recordService) Import(ctx context.Context, items []RecordImport) (ImportResult, error) {
	var result ImportResult
	for _, item := range items {
		if !s.allowed.Allows(item.Key) {
			result.Skipped++
			continue
		}
		record, err := s.records.Create(ctx, strings.ToLower(item.Key), item.Value)
		if err != nil {
			return result, fmt.Errorf("import record: %w", err)
		}
		s.publish(ctx, events.TopicRecordSaved, events.RecordSaved{Record: record, Created: true})
		result.Imported++
	}
	return result, nil
}

// publish emits best-effort events: failures never fail the request.
func (s *recordService) publish(ctx context.Context, topic string, event any) {
	if err := s.events.Publish(ctx, topic, event); err != nil {
		logger.Warn("event publish failed", "module", "service", "topic", topic, "error", err)
	}
}
