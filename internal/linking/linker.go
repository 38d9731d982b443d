// Package linking walks users through attaching imported positions to companies.
package linking

import (
	"context"
	"errors"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/session"
	"go.uber.org/zap"
)

// Step is what the user sees while a workflow is running. Position and
// Reconciliation are nil once every position was handled.
type Step struct {
	Workflow       *session.LinkWorkflow `json:"workflow"`
	Position       *types.Position       `json:"position,omitempty"`
	Reconciliation *types.Reconciliation `json:"reconciliation,omitempty"`
	Done           bool                  `json:"done"`
}

// Linker drives link workflows.
type Linker struct {
	db     database.Client
	store  *session.WorkflowStore
	logger *zap.Logger
}

// New creates a new linker.
func New(db database.Client, store *session.WorkflowStore, logger *zap.Logger) *Linker {
	return &Linker{
		db:     db,
		store:  store,
		logger: logger.Named("linker"),
	}
}

// Import stores the entries of an external profile and starts a workflow over
// the positions that were created.
func (l *Linker) Import(ctx context.Context, userID int64, entries []types.ImportedPosition) (*Step, error) {
	positions, err := l.db.Service().Position().Import(ctx, userID, entries)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(positions))
	for _, position := range positions {
		ids = append(ids, position.ID)
	}

	workflow, err := l.store.Create(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	return l.step(ctx, workflow)
}

// Current returns the pending step of a workflow.
func (l *Linker) Current(ctx context.Context, userID int64, token string) (*Step, error) {
	workflow, err := l.store.Load(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	return l.step(ctx, workflow)
}

// Choose links the current position to the company the user picked and moves on.
func (l *Linker) Choose(ctx context.Context, userID int64, token string, companyID int64) (*Step, error) {
	workflow, err := l.store.Load(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	positionID, err := workflow.Current()
	if err != nil {
		return nil, err
	}

	if err := l.db.Service().Position().LinkPosition(ctx, userID, positionID, companyID); err != nil {
		return nil, err
	}

	workflow.Advance(true)
	return l.save(ctx, workflow)
}

// Skip leaves the current position unlinked and moves on. A company name
// without any match is queued for creation.
func (l *Linker) Skip(ctx context.Context, userID int64, token string) (*Step, error) {
	workflow, err := l.store.Load(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	positionID, err := workflow.Current()
	if err != nil {
		return nil, err
	}

	position, err := l.db.Model().Position().GetByIDWithTx(ctx, l.db.DB(), positionID)
	if err != nil && !errors.Is(err, types.ErrPositionNotFound) {
		return nil, err
	}
	if err == nil && !position.IsLinked() && position.CompanyName != "" {
		if _, err := l.db.Service().Position().Reconcile(ctx, userID, position.CompanyName); err != nil {
			return nil, err
		}
	}

	workflow.Advance(false)
	return l.save(ctx, workflow)
}

func (l *Linker) save(ctx context.Context, workflow *session.LinkWorkflow) (*Step, error) {
	if workflow.Done() {
		return l.finish(ctx, workflow)
	}

	if err := l.store.Save(ctx, workflow); err != nil {
		return nil, err
	}
	return l.step(ctx, workflow)
}

// finish drops a workflow with no positions left.
func (l *Linker) finish(ctx context.Context, workflow *session.LinkWorkflow) (*Step, error) {
	if err := l.store.Delete(ctx, workflow.Token); err != nil {
		return nil, err
	}

	l.logger.Debug("Finished link workflow",
		zap.String("token", workflow.Token),
		zap.Int("linked", len(workflow.Linked)),
		zap.Int("skipped", len(workflow.Skipped)))

	return &Step{Workflow: workflow, Done: true}, nil
}

// step resolves the current position of a workflow without queueing anything.
// Positions deleted or linked elsewhere in the meantime are skipped and the
// workflow is stored again.
func (l *Linker) step(ctx context.Context, workflow *session.LinkWorkflow) (*Step, error) {
	positionID, err := workflow.Current()
	if err != nil {
		return l.finish(ctx, workflow)
	}

	position, err := l.db.Model().Position().GetByIDWithTx(ctx, l.db.DB(), positionID)
	if err != nil && !errors.Is(err, types.ErrPositionNotFound) {
		return nil, err
	}
	if err != nil || position.IsLinked() {
		workflow.Advance(false)
		return l.save(ctx, workflow)
	}

	reconciliation, err := l.db.Service().Position().Candidates(ctx, position.CompanyName)
	if err != nil {
		return nil, err
	}

	return &Step{Workflow: workflow, Position: position, Reconciliation: reconciliation}, nil
}
