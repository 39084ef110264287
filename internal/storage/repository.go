package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/tpfpulse/internal/domain/models"
)

// MarkingsRepository defines the contract for persisting TPF markings.
type MarkingsRepository interface {
	// LastReferenceDate returns the most recent REF_DATE already stored.
	// The boolean is false when the table is empty.
	LastReferenceDate(ctx context.Context) (time.Time, bool, error)
	// UpsertMarkings inserts-or-replaces long-form rows keyed by
	// (id, ref_date, var_type), so re-running a window is idempotent.
	UpsertMarkings(ctx context.Context, markings []models.Marking) error
}

type markingsRepository struct {
	db *sql.DB
}

func NewMarkingsRepository(db *sql.DB) MarkingsRepository {
	return &markingsRepository{db: db}
}

func (r *markingsRepository) LastReferenceDate(ctx context.Context) (time.Time, bool, error) {
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT MAX(ref_date) FROM anbima_tpf`).Scan(&last)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query last reference date: %w", err)
	}
	if !last.Valid {
		return time.Time{}, false, nil
	}
	return last.Time, true, nil
}

// UpsertMarkings bulk-loads the batch into a temporary staging table with
// COPY, then merges it into anbima_tpf with ON CONFLICT DO UPDATE. The whole
// operation is one transaction: a failed run leaves storage untouched.
func (r *markingsRepository) UpsertMarkings(ctx context.Context, markings []models.Marking) error {
	if len(markings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		CREATE TEMP TABLE anbima_tpf_stage (
			id            TEXT,
			ref_date      DATE,
			var_type      TEXT,
			tipo          TEXT,
			cod_selic     TEXT,
			data_emissao  DATE,
			data_venc     DATE,
			value         DOUBLE PRECISION
		) ON COMMIT DROP
	`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"anbima_tpf_stage",
		"id",
		"ref_date",
		"var_type",
		"tipo",
		"cod_selic",
		"data_emissao",
		"data_venc",
		"value",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, m := range markings {
		if _, err := stmt.Exec(
			m.ID,
			m.RefDate,
			m.VarType,
			m.Tipo,
			m.CodSelic,
			m.DataEmissao,
			m.DataVenc,
			m.Value,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO anbima_tpf (id, ref_date, var_type, tipo, cod_selic, data_emissao, data_venc, value)
		SELECT id, ref_date, var_type, tipo, cod_selic, data_emissao, data_venc, value
		FROM anbima_tpf_stage
		ON CONFLICT (id, ref_date, var_type)
		DO UPDATE SET tipo = EXCLUDED.tipo,
					  cod_selic = EXCLUDED.cod_selic,
					  data_emissao = EXCLUDED.data_emissao,
					  data_venc = EXCLUDED.data_venc,
					  value = EXCLUDED.value
	`); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
