package order

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const redisOrdersKey = "orders"

// FileLog appends confirmed orders to a local file, one JSON record
// per line. When a Redis client is supplied each record is also pushed
// to the "orders" list, mirroring how the session manager treats Redis
// as optional.
type FileLog struct {
	path  string
	redis *redis.Client
	mu    sync.Mutex
}

// NewFileLog creates a file-backed order log. redisClient may be nil.
func NewFileLog(path string, redisClient *redis.Client) *FileLog {
	return &FileLog{path: path, redis: redisClient}
}

// Append writes one order record. The file is opened, written, and
// flushed under the lock so concurrent sessions cannot interleave
// records.
func (fl *FileLog) Append(ctx context.Context, o *ConfirmedOrder) error {
	data, err := sonic.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open order log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write order log: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to flush order log: %w", err)
	}

	// Mirror to Redis when available; a mirror failure does not undo
	// the durable file write.
	if fl.redis != nil {
		if err := fl.redis.RPush(ctx, redisOrdersKey, data).Err(); err != nil {
			log.Printf("⚠️ Failed to mirror order %s to Redis: %v", o.OrderID, err)
		}
	}
	return nil
}
