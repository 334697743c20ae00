package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/octavianissuemonitoring/parser-law-sub001/dao"
	"github.com/octavianissuemonitoring/parser-law-sub001/data"
)

// ErrConcurrentMerge is returned when another merge for the same source
// URL is already in flight. The caller should retry later; the stored act
// is not corrupted.
var ErrConcurrentMerge = errors.New("another merge for this source URL is in flight")

// MergeError reports an aborted import. The surrounding transaction has
// been rolled back and the stored act is exactly as it was before the
// call.
type MergeError struct {
	Reason string
	Err    error
}

func (e *MergeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("merge failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("merge failed: %s", e.Reason)
}

func (e *MergeError) Unwrap() error { return e.Err }

// MergeStatus says what a merge did.
type MergeStatus string

const (
	MergeInserted  MergeStatus = "inserted"
	MergeUpdated   MergeStatus = "updated"
	MergeUnchanged MergeStatus = "unchanged"
)

// MergeOutcome is the result of reconciling a parse result against the
// stored snapshot. Change is only set for updates.
type MergeOutcome struct {
	Status   MergeStatus        `json:"status"`
	Act      *data.Act          `json:"act"`
	Articles []*data.Article    `json:"articles"`
	Annexes  []*data.Annex      `json:"annexes"`
	Change   *data.ChangeRecord `json:"change,omitempty"`
}

// ImportService reconciles freshly parsed acts against their stored
// versions: insert on first sight, transactional diff-and-replace on
// re-import. At most one merge runs per source URL at a time.
type ImportService struct {
	Db              *sql.DB
	ActDAO          *dao.ActDAO
	ArticleDAO      *dao.ArticleDAO
	AnnexDAO        *dao.AnnexDAO
	ChangeRecordDAO *dao.ChangeRecordDAO

	locks *sourceLocks
}

func NewImportService(
	db *sql.DB,
	actDAO *dao.ActDAO,
	articleDAO *dao.ArticleDAO,
	annexDAO *dao.AnnexDAO,
	changeRecordDAO *dao.ChangeRecordDAO,
) *ImportService {
	return &ImportService{
		Db:              db,
		ActDAO:          actDAO,
		ArticleDAO:      articleDAO,
		AnnexDAO:        annexDAO,
		ChangeRecordDAO: changeRecordDAO,
		locks:           newSourceLocks(),
	}
}

// Merge looks up the stored act by the parse result's source URL and
// either inserts it (version 1, every record pending) or updates it in
// place: scalar metadata overwritten, articles diffed by (number, context
// label) and replaced wholesale together with the annexes and a change
// record, all inside one transaction. A re-import with no effective change
// returns MergeUnchanged and writes nothing; one that only corrects scalar
// metadata still runs the full update path so the correction lands.
func (s *ImportService) Merge(
	ctx context.Context,
	result *data.ParseResult,
) (*MergeOutcome, error) {
	sourceURL := result.Metadata.SourceURL
	if sourceURL == "" {
		return nil, &MergeError{Reason: "parse result has no source URL"}
	}

	if !s.locks.acquire(sourceURL) {
		return nil, ErrConcurrentMerge
	}
	defer s.locks.release(sourceURL)

	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &MergeError{Reason: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	existing, err := s.ActDAO.FindBySourceURLForUpdateTx(ctx, tx, sourceURL)
	if err != nil {
		return nil, &MergeError{Reason: "look up stored act", Err: err}
	}

	if existing == nil {
		outcome, err := s.insertAct(ctx, tx, result)
		if err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, &MergeError{Reason: "commit insert", Err: err}
		}
		s.logInfo(fmt.Sprintf("Inserted %s as version 1 (%d articles, %d annexes)",
			sourceURL, len(outcome.Articles), len(outcome.Annexes)))
		return outcome, nil
	}

	return s.updateAct(ctx, tx, existing, result)
}

// insertAct stores a first import at version 1.
func (s *ImportService) insertAct(
	ctx context.Context,
	tx *sql.Tx,
	result *data.ParseResult,
) (*MergeOutcome, error) {
	act := &data.Act{ActMetadata: result.Metadata}
	if err := s.ActDAO.InsertTx(ctx, tx, act); err != nil {
		return nil, &MergeError{Reason: "insert act", Err: err}
	}
	if err := s.ArticleDAO.BatchInsertTx(ctx, tx, act.InternalId, result.Articles); err != nil {
		return nil, &MergeError{Reason: "insert articles", Err: err}
	}
	if err := s.AnnexDAO.BatchInsertTx(ctx, tx, act.InternalId, result.Annexes); err != nil {
		return nil, &MergeError{Reason: "insert annexes", Err: err}
	}
	return &MergeOutcome{
		Status:   MergeInserted,
		Act:      act,
		Articles: result.Articles,
		Annexes:  result.Annexes,
	}, nil
}

// updateAct is the re-import path: diff, replace, record.
func (s *ImportService) updateAct(
	ctx context.Context,
	tx *sql.Tx,
	existing *data.Act,
	result *data.ParseResult,
) (*MergeOutcome, error) {
	stored, err := s.ArticleDAO.FindByActTx(ctx, tx, existing.InternalId)
	if err != nil {
		return nil, &MergeError{Reason: "load stored articles", Err: err}
	}
	storedAnnexes, err := s.AnnexDAO.FindByActTx(ctx, tx, existing.InternalId)
	if err != nil {
		return nil, &MergeError{Reason: "load stored annexes", Err: err}
	}

	changes := DiffArticles(stored, result.Articles)

	if !hasMutations(changes) &&
		annexesEqual(storedAnnexes, result.Annexes) &&
		metadataEqual(existing.ActMetadata, result.Metadata) {
		// Idempotent re-import: nothing to write, version stays put.
		s.logInfo(fmt.Sprintf("No changes for %s at version %d",
			existing.SourceURL, existing.Version))
		return &MergeOutcome{
			Status:   MergeUnchanged,
			Act:      existing,
			Articles: stored,
			Annexes:  storedAnnexes,
		}, nil
	}

	applyChangeFlags(changes, stored, result.Articles)

	newVersion := existing.Version + 1
	if err := s.ActDAO.UpdateTx(ctx, tx, existing.InternalId, result.Metadata, newVersion); err != nil {
		return nil, &MergeError{Reason: "update act metadata", Err: err}
	}
	if err := s.ArticleDAO.DeleteByActTx(ctx, tx, existing.InternalId); err != nil {
		return nil, &MergeError{Reason: "delete stored articles", Err: err}
	}
	if err := s.ArticleDAO.BatchInsertTx(ctx, tx, existing.InternalId, result.Articles); err != nil {
		return nil, &MergeError{Reason: "insert new articles", Err: err}
	}
	if err := s.AnnexDAO.DeleteByActTx(ctx, tx, existing.InternalId); err != nil {
		return nil, &MergeError{Reason: "delete stored annexes", Err: err}
	}
	if err := s.AnnexDAO.BatchInsertTx(ctx, tx, existing.InternalId, result.Annexes); err != nil {
		return nil, &MergeError{Reason: "insert new annexes", Err: err}
	}

	record := &data.ChangeRecord{
		ActId:      existing.InternalId,
		OldVersion: existing.Version,
		NewVersion: newVersion,
		Changes:    changes,
	}
	if err := s.ChangeRecordDAO.InsertTx(ctx, tx, record); err != nil {
		return nil, &MergeError{Reason: "insert change record", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &MergeError{Reason: "commit update", Err: err}
	}

	updated := *existing
	updated.ActMetadata = result.Metadata
	updated.Version = newVersion

	added, modified, removed, _ := record.Counts()
	s.logInfo(fmt.Sprintf("Updated %s to version %d (+%d ~%d -%d)",
		existing.SourceURL, newVersion, added, modified, removed))

	return &MergeOutcome{
		Status:   MergeUpdated,
		Act:      &updated,
		Articles: result.Articles,
		Annexes:  result.Annexes,
		Change:   record,
	}, nil
}

// applyChangeFlags carries labeling state across the replace: modified
// articles are reset to pending with needs_relabel set, unchanged ones
// keep the status they had so completed work is not re-queued.
func applyChangeFlags(changes []data.ArticleChange, stored, parsed []*data.Article) {
	storedByKey := make(map[articleKey]*data.Article, len(stored))
	for _, a := range stored {
		storedByKey[keyOf(a)] = a
	}
	kinds := make(map[articleKey]data.ChangeKind, len(changes))
	for _, c := range changes {
		kinds[articleKey{Number: c.Number, ContextLabel: c.ContextLabel}] = c.Kind
	}

	for _, a := range parsed {
		key := keyOf(a)
		switch kinds[key] {
		case data.ChangeModified:
			a.AIStatus = data.AIStatusPending
			a.NeedsRelabel = true
		case data.ChangeUnchanged:
			if old := storedByKey[key]; old != nil {
				a.AIStatus = old.AIStatus
				a.NeedsRelabel = old.NeedsRelabel
			}
		}
	}
}

// ChangeHistory returns the change records of an act by its public id.
func (s *ImportService) ChangeHistory(
	ctx context.Context,
	actId string,
) ([]*data.ChangeRecord, error) {
	act, err := s.ActDAO.FindById(ctx, actId)
	if err != nil {
		return nil, fmt.Errorf("failed to find act: %w", err)
	}
	if act == nil {
		return nil, fmt.Errorf("act %s not found", actId)
	}
	return s.ChangeRecordDAO.FindByAct(ctx, act.InternalId)
}

func (s *ImportService) logInfo(message string) {
	log.Info(fmt.Sprintf("Act Import: %v", message))
}
