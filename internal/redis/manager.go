package redis

import (
	"fmt"
	"sync"

	"github.com/pracor/pracor/internal/setup/config"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

const (
	// SubmissionDBIndex holds resubmission digests in database 0
	// so they can be flushed without touching anything else.
	SubmissionDBIndex = 0

	// WorkflowDBIndex keeps multi-step workflow state in database 1.
	WorkflowDBIndex = 1

	// NotifyDBIndex is the connection used for publishing notifications.
	NotifyDBIndex = 2
)

// Manager maintains a thread-safe mapping of database indices to Redis clients.
// Each database index gets its own dedicated connection pool through rueidis.
type Manager struct {
	clients map[int]rueidis.Client
	config  *config.Redis
	logger  *zap.Logger
	mu      sync.Mutex // Protects concurrent access to the clients map
}

// NewManager initializes the Redis connection manager with an empty client pool.
// Actual client connections are created lazily when first requested.
func NewManager(config *config.Redis, logger *zap.Logger) *Manager {
	return &Manager{
		clients: make(map[int]rueidis.Client),
		config:  config,
		logger:  logger.Named("redis"),
	}
}

// GetClient retrieves or creates a Redis client for the specified database index.
func (m *Manager) GetClient(dbIndex int) (rueidis.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if client, exists := m.clients[dbIndex]; exists {
		return client, nil
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)},
		Username:     m.config.Username,
		Password:     m.config.Password,
		SelectDB:     dbIndex,
		ClientName:   "pracor",
		DisableCache: m.config.DisableCache,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis client for DB %d: %w", dbIndex, err)
	}

	m.clients[dbIndex] = client
	m.logger.Info("Created new Redis client", zap.Int("dbIndex", dbIndex))

	return client, nil
}

// Close shuts down all active Redis clients in the pool.
// Safe to call multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for dbIndex, client := range m.clients {
		client.Close()
		delete(m.clients, dbIndex)
		m.logger.Info("Closed Redis client", zap.Int("dbIndex", dbIndex))
	}
}
