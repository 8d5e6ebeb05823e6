//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package stores

import "context"

// Pair is the payload delivered to downstream stores after a successful save.
type Pair struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Notifier receives the finalized key/value pair after a record is saved.
// Implementations are invoked synchronously; an error fails the save request.
type Notifier interface {
	Notify(ctx context.Context, pair Pair) error
}
