package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// relayDedupTTL bounds how long a relayed order id blocks re-submission.
// Long enough to absorb double-clicked checkouts and page reloads.
const relayDedupTTL = 24 * time.Hour

// RelayDeduper prevents the same storefront order from being relayed to the
// courier twice. Key format: relay:order:<order_id>
type RelayDeduper struct {
	client *redis.Client
}

// NewRelayDeduper creates a RelayDeduper wrapping the given Redis client.
func NewRelayDeduper(client *redis.Client) *RelayDeduper {
	return &RelayDeduper{client: client}
}

// IsDuplicate reports whether this order has already been relayed.
func (d *RelayDeduper) IsDuplicate(ctx context.Context, orderID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(orderID)).Result()
	if err != nil {
		return false, fmt.Errorf("relay dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this order has been relayed (expires after relayDedupTTL).
func (d *RelayDeduper) Mark(ctx context.Context, orderID string) error {
	return d.client.Set(ctx, d.key(orderID), "1", relayDedupTTL).Err()
}

func (d *RelayDeduper) key(orderID string) string {
	return "relay:order:" + orderID
}
