package convert

import (
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/linking"
	restTypes "github.com/pracor/pracor/internal/rest/types"
)

// Position converts a database position.
func Position(position *types.Position) *restTypes.Position {
	if position == nil {
		return nil
	}

	return &restTypes.Position{
		ID:               position.ID,
		CompanyID:        position.CompanyID,
		CompanyName:      position.CompanyName,
		Title:            position.Title,
		Department:       position.Department,
		Location:         position.Location,
		StartMonth:       position.StartMonth,
		StartYear:        position.StartYear,
		EmploymentStatus: position.EmploymentStatus.String(),
		CreatedAt:        position.CreatedAt,
	}
}

// Positions converts a slice of database positions.
func Positions(positions []*types.Position) []*restTypes.Position {
	result := make([]*restTypes.Position, len(positions))
	for i, position := range positions {
		result[i] = Position(position)
	}
	return result
}

// Reconciliation converts the outcome of a name match.
func Reconciliation(r *types.Reconciliation) *restTypes.Reconciliation {
	if r == nil {
		return nil
	}

	return &restTypes.Reconciliation{
		Name:       r.Name,
		Candidates: Companies(r.Candidates),
		Queued:     r.Queued,
	}
}

// LinkStep converts the state of a link workflow.
func LinkStep(step *linking.Step) *restTypes.LinkStep {
	workflow := step.Workflow
	return &restTypes.LinkStep{
		Token:          workflow.Token,
		Done:           step.Done,
		Remaining:      max(len(workflow.PositionIDs)-workflow.Step, 0),
		Linked:         workflow.Linked,
		Skipped:        workflow.Skipped,
		Position:       Position(step.Position),
		Reconciliation: Reconciliation(step.Reconciliation),
	}
}

// ImportedPositions converts the entries of an imported profile.
func ImportedPositions(entries []restTypes.ImportedPosition) []types.ImportedPosition {
	result := make([]types.ImportedPosition, len(entries))
	for i, e := range entries {
		result[i] = types.ImportedPosition{
			ExternalID:  e.ExternalID,
			CompanyName: e.CompanyName,
			Title:       e.Title,
			Location:    e.Location,
			StartMonth:  e.StartMonth,
			StartYear:   e.StartYear,
		}
	}
	return result
}
