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

type ArticleDAO struct {
	Db *sql.DB
}

const articleColumns = `id, article_id, act_id, number, context, context_label,
	text_content, seq, ai_status, needs_relabel, created_timestamp, updated_timestamp`

// BatchInsertTx inserts all articles of an act inside the caller's
// transaction, in sequence order.
func (d *ArticleDAO) BatchInsertTx(
	ctx context.Context,
	tx *sql.Tx,
	actInternalId int,
	articles []*data.Article,
) error {
	if len(articles) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO article(
			article_id, act_id, number, context, context_label, text_content,
			seq, ai_status, needs_relabel, created_timestamp, updated_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
	)
	if err != nil {
		return fmt.Errorf("error preparing article insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, article := range articles {
		if article.Id == "" {
			article.Id = uuid.New().String()
		}
		article.ActId = actInternalId
		contextJSON, err := json.Marshal(article.Context)
		if err != nil {
			return fmt.Errorf("error marshaling article context: %w", err)
		}
		_, err = stmt.ExecContext(
			ctx,
			article.Id,
			actInternalId,
			article.Number,
			contextJSON,
			article.Context.Label(),
			article.Text,
			article.Seq,
			string(article.AIStatus),
			article.NeedsRelabel,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("error inserting article %q: %w", article.Number, err)
		}
	}
	return nil
}

// DeleteByActTx removes all articles of an act inside the caller's
// transaction.
func (d *ArticleDAO) DeleteByActTx(
	ctx context.Context,
	tx *sql.Tx,
	actInternalId int,
) error {
	_, err := tx.ExecContext(
		ctx,
		`DELETE FROM article WHERE act_id = $1`,
		actInternalId,
	)
	if err != nil {
		return fmt.Errorf("error deleting articles for act %d: %w", actInternalId, err)
	}
	return nil
}

// FindByAct returns the articles of an act in sequence order.
func (d *ArticleDAO) FindByAct(
	ctx context.Context,
	actInternalId int,
) ([]*data.Article, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT `+articleColumns+` FROM article WHERE act_id = $1 ORDER BY seq`,
		actInternalId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding articles by act: %w", err)
	}
	defer rows.Close()

	return d.scanArticles(rows)
}

// FindByActTx is FindByAct inside the caller's transaction, used by the
// merge to diff against a row-locked snapshot.
func (d *ArticleDAO) FindByActTx(
	ctx context.Context,
	tx *sql.Tx,
	actInternalId int,
) ([]*data.Article, error) {
	rows, err := tx.QueryContext(
		ctx,
		`SELECT `+articleColumns+` FROM article WHERE act_id = $1 ORDER BY seq`,
		actInternalId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding articles by act: %w", err)
	}
	defer rows.Close()

	return d.scanArticles(rows)
}

// FindLabelingQueue returns all articles still owed to the downstream
// labeling stage: pending ones and those whose text changed since the last
// pass.
func (d *ArticleDAO) FindLabelingQueue(ctx context.Context) ([]*data.Article, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT `+articleColumns+` FROM article
		WHERE ai_status = $1 OR needs_relabel = TRUE
		ORDER BY act_id, seq`,
		string(data.AIStatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("error finding labeling queue: %w", err)
	}
	defer rows.Close()

	return d.scanArticles(rows)
}

func (d *ArticleDAO) scanArticles(rows *sql.Rows) ([]*data.Article, error) {
	var articles []*data.Article

	for rows.Next() {
		var article data.Article
		var contextJSON []byte
		var contextLabel string
		var aiStatus string
		err := rows.Scan(
			&article.InternalId,
			&article.Id,
			&article.ActId,
			&article.Number,
			&contextJSON,
			&contextLabel,
			&article.Text,
			&article.Seq,
			&aiStatus,
			&article.NeedsRelabel,
			&article.CreatedAt,
			&article.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning article row: %w", err)
		}
		if err := json.Unmarshal(contextJSON, &article.Context); err != nil {
			return nil, fmt.Errorf("error unmarshaling article context: %w", err)
		}
		article.AIStatus = data.AIStatus(aiStatus)
		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}
	return articles, nil
}
