package migrations

import (
	"context"
	"fmt"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/uptrace/bun"
)

type indexDef struct {
	model   any
	name    string
	columns []string
	where   string
}

var initialIndexes = []indexDef{
	{(*types.Company)(nil), "idx_companies_search_name", []string{"search_name"}, ""},
	{(*types.Position)(nil), "idx_positions_user_company", []string{"user_id", "company_id", "created_at"}, ""},
	{(*types.Position)(nil), "idx_positions_unlinked_name", []string{"company_name"}, "company_id IS NULL"},
	{(*types.Review)(nil), "idx_reviews_company_created", []string{"company_id", "created_at"}, ""},
	{(*types.Salary)(nil), "idx_salaries_company_created", []string{"company_id", "created_at"}, ""},
	{(*types.Interview)(nil), "idx_interviews_company_created", []string{"company_id", "created_at"}, ""},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, idx := range initialIndexes {
			q := db.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists()
			if idx.where != "" {
				q = q.Where(idx.where)
			}

			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, idx := range initialIndexes {
			_, err := db.NewDropIndex().
				Index(idx.name).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop index %s: %w", idx.name, err)
			}
		}

		return nil
	})
}
