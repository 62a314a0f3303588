package migrations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20250819000002, down_20250819000002)
}

// Legacy role spellings left behind by earlier seed data.
var legacyRoleNames = map[string]string{
	"ROLE_PROFESOR":    "ROLE_PROFESSOR",
	"ROLE_ESTUDIANTE":  "ROLE_STUDENT",
	"ROLE_ESTUDIANTES": "ROLE_STUDENT",
}

// up_20250819000002 rewrites legacy role spellings in the stored role sets so
// every row carries the canonical vocabulary
func up_20250819000002(ctx context.Context, db *bun.DB) error {
	for _, table := range []string{"students", "professors"} {
		fmt.Printf(" [up] normalizing %s roles...", table)
		if err := normalizeRolesIn(ctx, db, table); err != nil {
			return fmt.Errorf("failed to normalize %s roles: %w", table, err)
		}
		fmt.Println(" OK")
	}
	return nil
}

// down_20250819000002 is a no-op; the legacy spellings are not restorable
func down_20250819000002(ctx context.Context, db *bun.DB) error {
	fmt.Println(" [down] role normalization is not reversible, skipping")
	return nil
}

func normalizeRolesIn(ctx context.Context, db *bun.DB, table string) error {
	type row struct {
		ID    int64  `bun:"id"`
		Roles string `bun:"roles"`
	}

	var rows []row
	err := db.NewSelect().
		Table(table).
		Column("id", "roles").
		Scan(ctx, &rows)
	if err != nil {
		return err
	}

	for _, r := range rows {
		var roles []string
		if err := json.Unmarshal([]byte(r.Roles), &roles); err != nil {
			return fmt.Errorf("row %d has malformed roles column: %w", r.ID, err)
		}

		changed := false
		for i, role := range roles {
			if canonical, ok := legacyRoleNames[role]; ok {
				roles[i] = canonical
				changed = true
			}
		}
		if !changed {
			continue
		}

		encoded, err := json.Marshal(dedupe(roles))
		if err != nil {
			return err
		}
		_, err = db.NewUpdate().
			Table(table).
			Set("roles = ?", string(encoded)).
			Where("id = ?", r.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update row %d: %w", r.ID, err)
		}
	}
	return nil
}

func dedupe(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := roles[:0]
	for _, role := range roles {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out
}
