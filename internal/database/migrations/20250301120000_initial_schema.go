package migrations

import (
	"context"
	"fmt"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []struct {
			model       any
			foreignKeys []string
		}{
			{(*types.User)(nil), nil},
			{(*types.Company)(nil), nil},
			{(*types.CompanyRequest)(nil), nil},
			{(*types.Position)(nil), []string{
				`("company_id") REFERENCES "companies" ("id") ON DELETE SET NULL`,
			}},
			{(*types.Review)(nil), []string{
				`("company_id") REFERENCES "companies" ("id") ON DELETE CASCADE`,
				`("position_id") REFERENCES "positions" ("id") ON DELETE SET NULL`,
			}},
			{(*types.Salary)(nil), []string{
				`("company_id") REFERENCES "companies" ("id") ON DELETE CASCADE`,
				`("position_id") REFERENCES "positions" ("id") ON DELETE SET NULL`,
			}},
			{(*types.Interview)(nil), []string{
				`("company_id") REFERENCES "companies" ("id") ON DELETE CASCADE`,
			}},
		}

		for _, table := range tables {
			q := db.NewCreateTable().
				Model(table.model).
				IfNotExists()
			for _, fk := range table.foreignKeys {
				q = q.ForeignKey(fk)
			}

			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table %T: %w", table.model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Children first so foreign keys never dangle
		models := []any{
			(*types.Interview)(nil),
			(*types.Salary)(nil),
			(*types.Review)(nil),
			(*types.Position)(nil),
			(*types.CompanyRequest)(nil),
			(*types.Company)(nil),
			(*types.User)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %T: %w", model, err)
			}
		}

		return nil
	})
}
