package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/room4-2/OpenOrder/config"
	"github.com/room4-2/OpenOrder/dialogue"
	"github.com/room4-2/OpenOrder/menu"
	"github.com/room4-2/OpenOrder/order"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// Manager manages all client sessions
type Manager struct {
	sessions  map[string]*Conn
	mu        sync.RWMutex
	redis     *redis.Client
	config    *config.Config
	catalog   *menu.Catalog
	completer dialogue.Completer
	committer *order.Committer
}

// NewManager creates a session manager with an optional Redis
// connection for session metadata.
func NewManager(cfg *config.Config, catalog *menu.Catalog, completer dialogue.Completer, committer *order.Committer) (*Manager, error) {
	// Try to connect to Redis, but don't fail if unavailable
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		// Redis unavailable, continue without it
		redisClient = nil
	}

	return &Manager{
		sessions:  make(map[string]*Conn),
		redis:     redisClient,
		config:    cfg,
		catalog:   catalog,
		completer: completer,
		committer: committer,
	}, nil
}

// CreateSession creates a new client session for a websocket connection
func (sm *Manager) CreateSession(ctx context.Context, clientConn *websocket.Conn) (*Conn, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.config.MaxSessions {
		return nil, fmt.Errorf("maximum sessions reached")
	}

	sessionID := uuid.New().String()
	ordering := dialogue.NewSession(sessionID, sm.catalog, sm.completer, sm.committer, sm.config.MaxTranscript)

	conn := NewConn(sessionID, clientConn, ordering)

	sm.storeSession(ctx, sessionID, conn)
	return conn, nil
}

// storeSession saves a session to memory and Redis
func (sm *Manager) storeSession(ctx context.Context, sessionID string, conn *Conn) {
	sm.sessions[sessionID] = conn

	if sm.redis != nil {
		sm.redis.HSet(ctx, "session:"+sessionID, map[string]interface{}{
			"created_at":    conn.CreatedAt.Format(time.RFC3339),
			"last_activity": conn.LastActivity.Format(time.RFC3339),
			"status":        "active",
			"phase":         string(conn.Ordering.Phase),
		})
		sm.redis.SAdd(ctx, "active_sessions", sessionID)
		sm.redis.Expire(ctx, "session:"+sessionID, sm.config.SessionTimeout)
	}
}

// GetSession retrieves a session by ID
func (sm *Manager) GetSession(sessionID string) (*Conn, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	conn, exists := sm.sessions[sessionID]
	return conn, exists
}

// RemoveSession cleans up and removes a session
func (sm *Manager) RemoveSession(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	conn, exists := sm.sessions[sessionID]
	if !exists {
		return nil
	}

	conn.Close()
	delete(sm.sessions, sessionID)

	if sm.redis != nil {
		sm.redis.Del(ctx, "session:"+sessionID)
		sm.redis.SRem(ctx, "active_sessions", sessionID)
	}

	return nil
}

// GetActiveSessionCount returns current session count
func (sm *Manager) GetActiveSessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupInactiveSessions removes sessions that have been inactive
func (sm *Manager) CleanupInactiveSessions(ctx context.Context) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for id, conn := range sm.sessions {
		if now.Sub(conn.LastSeen()) > sm.config.SessionTimeout {
			conn.Close()
			delete(sm.sessions, id)

			if sm.redis != nil {
				sm.redis.Del(ctx, "session:"+id)
				sm.redis.SRem(ctx, "active_sessions", id)
			}
		}
	}
}

// StartCleanupRoutine starts periodic cleanup of inactive sessions
func (sm *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.CleanupInactiveSessions(ctx)
		}
	}
}

// Shutdown closes all sessions
func (sm *Manager) Shutdown() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for id, conn := range sm.sessions {
		conn.Close()
		delete(sm.sessions, id)
	}

	if sm.redis != nil {
		sm.redis.Close()
	}
}
