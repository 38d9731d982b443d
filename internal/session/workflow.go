package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pracor/pracor/internal/redis"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// WorkflowPrefix namespaces stored link workflows.
const WorkflowPrefix = "workflow:link:"

var (
	ErrWorkflowNotFound = errors.New("link workflow not found")
	ErrWorkflowFinished = errors.New("link workflow has no positions left")
)

// LinkWorkflow walks a user through linking imported positions to companies,
// one position at a time.
type LinkWorkflow struct {
	Token       string    `json:"token"`
	UserID      int64     `json:"userId"`
	PositionIDs []int64   `json:"positionIds"`
	Step        int       `json:"step"`
	Linked      []int64   `json:"linked"`
	Skipped     []int64   `json:"skipped"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Done reports whether every position was handled.
func (w *LinkWorkflow) Done() bool {
	return w.Step >= len(w.PositionIDs)
}

// Current returns the position waiting for a decision.
func (w *LinkWorkflow) Current() (int64, error) {
	if w.Done() {
		return 0, ErrWorkflowFinished
	}
	return w.PositionIDs[w.Step], nil
}

// Advance records the decision on the current position and moves to the next one.
func (w *LinkWorkflow) Advance(linked bool) {
	if w.Done() {
		return
	}

	positionID := w.PositionIDs[w.Step]
	if linked {
		w.Linked = append(w.Linked, positionID)
	} else {
		w.Skipped = append(w.Skipped, positionID)
	}
	w.Step++
}

// WorkflowStore persists link workflows under random tokens.
type WorkflowStore struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewWorkflowStore creates a store that keeps idle workflows for ttl.
func NewWorkflowStore(redisManager *redis.Manager, ttl time.Duration, logger *zap.Logger) (*WorkflowStore, error) {
	client, err := redisManager.GetClient(redis.WorkflowDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis client: %w", err)
	}

	return &WorkflowStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("workflow_store"),
	}, nil
}

// Create starts a workflow over the given positions and stores it.
func (s *WorkflowStore) Create(ctx context.Context, userID int64, positionIDs []int64) (*LinkWorkflow, error) {
	workflow := &LinkWorkflow{
		Token:       uuid.New().String(),
		UserID:      userID,
		PositionIDs: positionIDs,
		Linked:      []int64{},
		Skipped:     []int64{},
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Save(ctx, workflow); err != nil {
		return nil, err
	}

	s.logger.Debug("Started link workflow",
		zap.String("token", workflow.Token),
		zap.Int64("userID", userID),
		zap.Int("positions", len(positionIDs)))

	return workflow, nil
}

// Save stores the workflow and restarts its expiry.
func (s *WorkflowStore) Save(ctx context.Context, workflow *LinkWorkflow) error {
	data, err := sonic.Marshal(workflow)
	if err != nil {
		return fmt.Errorf("failed to marshal link workflow: %w", err)
	}

	seconds := max(int64(s.ttl/time.Second), 1)
	err = s.client.Do(ctx, s.client.B().Set().
		Key(WorkflowPrefix+workflow.Token).
		Value(rueidis.BinaryString(data)).
		ExSeconds(seconds).
		Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to save link workflow: %w", err)
	}

	return nil
}

// Load returns the workflow stored under token. Workflows of other users are
// reported as missing.
func (s *WorkflowStore) Load(ctx context.Context, token string, userID int64) (*LinkWorkflow, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(WorkflowPrefix+token).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to load link workflow: %w", err)
	}

	var workflow LinkWorkflow
	if err := sonic.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("failed to parse link workflow: %w", err)
	}

	if workflow.UserID != userID {
		return nil, ErrWorkflowNotFound
	}

	return &workflow, nil
}

// Delete removes a workflow.
func (s *WorkflowStore) Delete(ctx context.Context, token string) error {
	err := s.client.Do(ctx, s.client.B().Del().Key(WorkflowPrefix+token).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to delete link workflow: %w", err)
	}
	return nil
}
