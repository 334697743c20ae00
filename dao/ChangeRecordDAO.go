package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

type ChangeRecordDAO struct {
	Db *sql.DB
}

// InsertTx appends a change record inside the caller's transaction. The
// per-article entries are stored as a JSON blob; records are never updated
// afterward.
func (d *ChangeRecordDAO) InsertTx(
	ctx context.Context,
	tx *sql.Tx,
	record *data.ChangeRecord,
) error {
	record.Id = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("error marshaling change entries: %w", err)
	}

	err = tx.QueryRowContext(
		ctx,
		`INSERT INTO change_record(
			record_id, act_id, old_version, new_version, changes, created_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		record.Id,
		record.ActId,
		record.OldVersion,
		record.NewVersion,
		changesJSON,
		record.CreatedAt,
	).Scan(&record.InternalId)

	if err != nil {
		return fmt.Errorf("error inserting change record: %w", err)
	}
	return nil
}

// FindByAct returns the change history of an act, newest first.
func (d *ChangeRecordDAO) FindByAct(
	ctx context.Context,
	actInternalId int,
) ([]*data.ChangeRecord, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, record_id, act_id, old_version, new_version, changes, created_timestamp
		FROM change_record
		WHERE act_id = $1
		ORDER BY new_version DESC`,
		actInternalId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding change records: %w", err)
	}
	defer rows.Close()

	var records []*data.ChangeRecord
	for rows.Next() {
		var record data.ChangeRecord
		var changesJSON []byte
		err := rows.Scan(
			&record.InternalId,
			&record.Id,
			&record.ActId,
			&record.OldVersion,
			&record.NewVersion,
			&changesJSON,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning change record row: %w", err)
		}
		if err := json.Unmarshal(changesJSON, &record.Changes); err != nil {
			return nil, fmt.Errorf("error unmarshaling change entries: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change record rows: %w", err)
	}
	return records, nil
}
