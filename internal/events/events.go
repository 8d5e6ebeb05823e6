package events

import (
	"context"

	"urlboard/internal/model"
)

// Event topic constants
const (
	TopicRecordSaved   = "urlboard.record.saved"
	TopicRecordDeleted = "urlboard.record.deleted"
	TopicStoreCreated  = "urlboard.store.created"
	TopicStoreUpdated  = "urlboard.store.updated"
	TopicStoreDeleted  = "urlboard.store.deleted"
)

// Event types

type RecordSaved struct {
	Record *model.Record `json:"record"`
	// Created distinguishes a fresh record from a value update.
	Created bool `json:"created"`
}

type RecordDeleted struct {
	RecordID int64 `json:"record_id"`
}

type StoreCreated struct {
	Store *model.Store `json:"store"`
}

type StoreUpdated struct {
	Store *model.Store `json:"store"`
}

type StoreDeleted struct {
	StoreID int64 `json:"store_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
