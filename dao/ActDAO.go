package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

type ActDAO struct {
	Db *sql.DB
}

const actColumns = `id, act_id, act_type, number, year, issue_date, title, issuer,
	gazette_number, gazette_date, gazette_year, source_url, version,
	created_timestamp, updated_timestamp`

// FindBySourceURL finds the stored act for a source URL, nil when absent.
func (d *ActDAO) FindBySourceURL(
	ctx context.Context,
	sourceURL string,
) (*data.Act, error) {
	row := d.Db.QueryRowContext(
		ctx,
		`SELECT `+actColumns+` FROM act WHERE source_url = $1`,
		sourceURL,
	)
	return scanAct(row)
}

// FindBySourceURLForUpdateTx is the merge-path lookup: it takes a row lock
// so two merges of the same URL serialize at the database as well.
func (d *ActDAO) FindBySourceURLForUpdateTx(
	ctx context.Context,
	tx *sql.Tx,
	sourceURL string,
) (*data.Act, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT `+actColumns+` FROM act WHERE source_url = $1 FOR UPDATE`,
		sourceURL,
	)
	return scanAct(row)
}

// FindById finds an act by its public id, nil when absent.
func (d *ActDAO) FindById(
	ctx context.Context,
	actId string,
) (*data.Act, error) {
	row := d.Db.QueryRowContext(
		ctx,
		`SELECT `+actColumns+` FROM act WHERE act_id = $1`,
		actId,
	)
	return scanAct(row)
}

// FindAll lists all stored acts, newest first.
func (d *ActDAO) FindAll(ctx context.Context) ([]*data.Act, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT `+actColumns+` FROM act ORDER BY created_timestamp DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding acts: %w", err)
	}
	defer rows.Close()

	var acts []*data.Act
	for rows.Next() {
		act, err := scanActRow(rows)
		if err != nil {
			return nil, err
		}
		acts = append(acts, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating act rows: %w", err)
	}
	return acts, nil
}

// InsertTx inserts a new act at version 1 and fills its ids.
func (d *ActDAO) InsertTx(
	ctx context.Context,
	tx *sql.Tx,
	act *data.Act,
) error {
	act.Id = uuid.New().String()
	act.Version = 1
	now := time.Now().UTC()
	act.CreatedAt = now
	act.UpdatedAt = now

	err := tx.QueryRowContext(
		ctx,
		`INSERT INTO act(
			act_id, act_type, number, year, issue_date, title, issuer,
			gazette_number, gazette_date, gazette_year, source_url, version,
			created_timestamp, updated_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		act.Id,
		string(act.ActType),
		act.Number,
		act.Year,
		act.IssueDate,
		act.Title,
		act.Issuer,
		act.GazetteNumber,
		act.GazetteDate,
		act.GazetteYear,
		act.SourceURL,
		act.Version,
		act.CreatedAt,
		act.UpdatedAt,
	).Scan(&act.InternalId)

	if err != nil {
		return fmt.Errorf("error inserting act: %w", err)
	}
	return nil
}

// UpdateTx overwrites the scalar metadata fields of a stored act and sets
// its version.
func (d *ActDAO) UpdateTx(
	ctx context.Context,
	tx *sql.Tx,
	internalId int,
	meta data.ActMetadata,
	version int,
) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE act SET
			act_type = $1, number = $2, year = $3, issue_date = $4, title = $5,
			issuer = $6, gazette_number = $7, gazette_date = $8, gazette_year = $9,
			version = $10, updated_timestamp = $11
		WHERE id = $12`,
		string(meta.ActType),
		meta.Number,
		meta.Year,
		meta.IssueDate,
		meta.Title,
		meta.Issuer,
		meta.GazetteNumber,
		meta.GazetteDate,
		meta.GazetteYear,
		version,
		time.Now().UTC(),
		internalId,
	)
	if err != nil {
		return fmt.Errorf("error updating act %d: %w", internalId, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActInto(s rowScanner, act *data.Act) error {
	var actType string
	err := s.Scan(
		&act.InternalId,
		&act.Id,
		&actType,
		&act.Number,
		&act.Year,
		&act.IssueDate,
		&act.Title,
		&act.Issuer,
		&act.GazetteNumber,
		&act.GazetteDate,
		&act.GazetteYear,
		&act.SourceURL,
		&act.Version,
		&act.CreatedAt,
		&act.UpdatedAt,
	)
	act.ActType = data.ActType(actType)
	return err
}

func scanAct(row *sql.Row) (*data.Act, error) {
	var act data.Act
	err := scanActInto(row, &act)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning act row: %w", err)
	}
	return &act, nil
}

func scanActRow(rows *sql.Rows) (*data.Act, error) {
	var act data.Act
	if err := scanActInto(rows, &act); err != nil {
		return nil, fmt.Errorf("error scanning act row: %w", err)
	}
	return &act, nil
}
