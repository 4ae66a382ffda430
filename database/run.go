package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/mkyung/handover/model"
	"go.opentelemetry.io/otel"
)

// RecordRun inserts a new run record into the database
func (d Datasource) RecordRun(ctx context.Context, run *model.Run) error {
	ctx, span := otel.Tracer("Run").Start(ctx, "Saving run to db")
	defer span.End()

	_, err := d.Conn.ExecContext(ctx,
		`INSERT INTO runs(
			run_id, company, year, status, matched_count,
			unmatched_count, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.RunID, run.Company, run.Year, run.Status, run.MatchedCount,
		run.UnmatchedCount, run.StartedAt, run.CompletedAt,
	)

	return err
}

// GetRun retrieves a run record by its ID
func (d Datasource) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	ctx, span := otel.Tracer("Run").Start(ctx, "Fetching run from db")
	defer span.End()

	run := &model.Run{}
	err := d.Conn.QueryRowContext(ctx, `
		SELECT id, run_id, company, year, status, matched_count,
			unmatched_count, started_at, completed_at
		FROM runs
		WHERE run_id = $1
	`, runID).Scan(
		&run.ID, &run.RunID, &run.Company, &run.Year, &run.Status,
		&run.MatchedCount, &run.UnmatchedCount,
		&run.StartedAt, &run.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// GetRunsByCompany retrieves all runs for a given company
func (d Datasource) GetRunsByCompany(ctx context.Context, company string) ([]*model.Run, error) {
	ctx, span := otel.Tracer("Run").Start(ctx, "Fetching runs by company")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, run_id, company, year, status, matched_count,
			unmatched_count, started_at, completed_at
		FROM runs
		WHERE company = $1
		ORDER BY started_at DESC
	`, company)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*model.Run

	for rows.Next() {
		run := &model.Run{}
		err = rows.Scan(
			&run.ID, &run.RunID, &run.Company, &run.Year, &run.Status,
			&run.MatchedCount, &run.UnmatchedCount,
			&run.StartedAt, &run.CompletedAt,
		)
		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	return runs, nil
}

// UpdateRunStatus updates the status of a run record
func (d Datasource) UpdateRunStatus(ctx context.Context, runID, status string, matchedCount, unmatchedCount int) error {
	ctx, span := otel.Tracer("Run").Start(ctx, "Updating run status")
	defer span.End()

	completedAt := sql.NullTime{Time: time.Now(), Valid: status == "completed"}

	_, err := d.Conn.ExecContext(ctx, `
		UPDATE runs
		SET status = $2, matched_count = $3, unmatched_count = $4, completed_at = $5
		WHERE run_id = $1
	`, runID, status, matchedCount, unmatchedCount, completedAt)

	return err
}

// RecordMatch inserts a new match record into the database
func (d Datasource) RecordMatch(ctx context.Context, match *model.MatchResult) error {
	ctx, span := otel.Tracer("Run").Start(ctx, "Saving match to db")
	defer span.End()

	_, err := d.Conn.ExecContext(ctx,
		`INSERT INTO matches(
			match_id, run_id, source_id, ledger_key, amount, date, status, reason, near_miss
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		match.MatchID, match.RunID, match.SourceID, match.LedgerKey,
		match.Amount, match.Date, match.Status, match.Reason, match.NearMiss,
	)

	return err
}

// GetMatchesByRunID retrieves all matches for a given run
func (d Datasource) GetMatchesByRunID(ctx context.Context, runID string) ([]*model.MatchResult, error) {
	ctx, span := otel.Tracer("Run").Start(ctx, "Fetching matches by run ID")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT match_id, run_id, source_id, ledger_key, amount, date, status, reason, near_miss
		FROM matches
		WHERE run_id = $1
		ORDER BY source_id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*model.MatchResult

	for rows.Next() {
		match := &model.MatchResult{}
		err = rows.Scan(
			&match.MatchID, &match.RunID, &match.SourceID, &match.LedgerKey,
			&match.Amount, &match.Date, &match.Status, &match.Reason, &match.NearMiss,
		)
		if err != nil {
			return nil, err
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// RecordAuditEvent inserts an audit-trail event into the database
func (d Datasource) RecordAuditEvent(ctx context.Context, runID string, event model.AuditEvent) error {
	ctx, span := otel.Tracer("Run").Start(ctx, "Saving audit event to db")
	defer span.End()

	_, err := d.Conn.ExecContext(ctx,
		`INSERT INTO audit_events(run_id, kind, key, reason) VALUES ($1, $2, $3, $4)`,
		runID, event.Kind, event.Key, event.Reason,
	)

	return err
}

// GetAuditByRunID retrieves the audit trail for a given run
func (d Datasource) GetAuditByRunID(ctx context.Context, runID string) ([]model.AuditEvent, error) {
	ctx, span := otel.Tracer("Run").Start(ctx, "Fetching audit trail by run ID")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT kind, key, reason
		FROM audit_events
		WHERE run_id = $1
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.AuditEvent

	for rows.Next() {
		var event model.AuditEvent
		err = rows.Scan(&event.Kind, &event.Key, &event.Reason)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, nil
}
