package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

type AnnexDAO struct {
	Db *sql.DB
}

const annexColumns = `id, annex_id, act_id, number, title, text_content, seq,
	ai_status, needs_relabel, created_timestamp`

// BatchInsertTx inserts all annexes of an act inside the caller's
// transaction. The (act_id, number) unique constraint aborts the
// transaction on duplicate annex numbers.
func (d *AnnexDAO) BatchInsertTx(
	ctx context.Context,
	tx *sql.Tx,
	actInternalId int,
	annexes []*data.Annex,
) error {
	if len(annexes) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO annex(
			annex_id, act_id, number, title, text_content, seq,
			ai_status, needs_relabel, created_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
	)
	if err != nil {
		return fmt.Errorf("error preparing annex insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, annex := range annexes {
		if annex.Id == "" {
			annex.Id = uuid.New().String()
		}
		annex.ActId = actInternalId
		_, err := stmt.ExecContext(
			ctx,
			annex.Id,
			actInternalId,
			annex.Number,
			annex.Title,
			annex.Text,
			annex.Seq,
			string(annex.AIStatus),
			annex.NeedsRelabel,
			now,
		)
		if err != nil {
			return fmt.Errorf("error inserting annex %q: %w", annex.Number, err)
		}
	}
	return nil
}

// DeleteByActTx removes all annexes of an act inside the caller's
// transaction.
func (d *AnnexDAO) DeleteByActTx(
	ctx context.Context,
	tx *sql.Tx,
	actInternalId int,
) error {
	_, err := tx.ExecContext(
		ctx,
		`DELETE FROM annex WHERE act_id = $1`,
		actInternalId,
	)
	if err != nil {
		return fmt.Errorf("error deleting annexes for act %d: %w", actInternalId, err)
	}
	return nil
}

// FindByAct returns the annexes of an act in sequence order.
func (d *AnnexDAO) FindByAct(
	ctx context.Context,
	actInternalId int,
) ([]*data.Annex, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT `+annexColumns+` FROM annex WHERE act_id = $1 ORDER BY seq`,
		actInternalId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding annexes by act: %w", err)
	}
	defer rows.Close()

	return d.scanAnnexes(rows)
}

// FindByActTx is FindByAct inside the caller's transaction.
func (d *AnnexDAO) FindByActTx(
	ctx context.Context,
	tx *sql.Tx,
	actInternalId int,
) ([]*data.Annex, error) {
	rows, err := tx.QueryContext(
		ctx,
		`SELECT `+annexColumns+` FROM annex WHERE act_id = $1 ORDER BY seq`,
		actInternalId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding annexes by act: %w", err)
	}
	defer rows.Close()

	return d.scanAnnexes(rows)
}

func (d *AnnexDAO) scanAnnexes(rows *sql.Rows) ([]*data.Annex, error) {
	var annexes []*data.Annex

	for rows.Next() {
		var annex data.Annex
		var aiStatus string
		err := rows.Scan(
			&annex.InternalId,
			&annex.Id,
			&annex.ActId,
			&annex.Number,
			&annex.Title,
			&annex.Text,
			&annex.Seq,
			&aiStatus,
			&annex.NeedsRelabel,
			&annex.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning annex row: %w", err)
		}
		annex.AIStatus = data.AIStatus(aiStatus)
		annexes = append(annexes, &annex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating annex rows: %w", err)
	}
	return annexes, nil
}
