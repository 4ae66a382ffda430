/*
Copyright 2025 Handover Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mkyung/handover/model"
	"github.com/stretchr/testify/assert"
)

func TestRecordRun_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()
	completedAt := time.Now()

	run := &model.Run{
		RunID:          "run123",
		Company:        "example",
		Year:           2024,
		Status:         "completed",
		MatchedCount:   10,
		UnmatchedCount: 5,
		StartedAt:      time.Now(),
		CompletedAt:    &completedAt,
	}

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(run.RunID, run.Company, run.Year, run.Status, run.MatchedCount,
			run.UnmatchedCount, run.StartedAt, run.CompletedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = ds.RecordRun(ctx, run)
	assert.NoError(t, err)
}

func TestRecordRun_Fail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()
	completedAt := time.Now()

	run := &model.Run{
		RunID:          "run123",
		Company:        "example",
		Year:           2024,
		Status:         "completed",
		MatchedCount:   10,
		UnmatchedCount: 5,
		StartedAt:      time.Now(),
		CompletedAt:    &completedAt,
	}

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(run.RunID, run.Company, run.Year, run.Status, run.MatchedCount,
			run.UnmatchedCount, run.StartedAt, run.CompletedAt).
		WillReturnError(fmt.Errorf("failed to insert"))

	err = ds.RecordRun(ctx, run)
	assert.Error(t, err)
}

func TestGetRun_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()
	startedAt := time.Now()
	completedAt := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "run_id", "company", "year", "status", "matched_count",
		"unmatched_count", "started_at", "completed_at",
	}).AddRow(1, "run123", "example", 2024, "completed", 10, 5, startedAt, completedAt)

	mock.ExpectQuery("SELECT .* FROM runs").
		WithArgs("run123").
		WillReturnRows(rows)

	run, err := ds.GetRun(ctx, "run123")
	assert.NoError(t, err)
	assert.Equal(t, "run123", run.RunID)
	assert.Equal(t, "example", run.Company)
	assert.Equal(t, 2024, run.Year)
	assert.Equal(t, 10, run.MatchedCount)
}

func TestUpdateRunStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()

	mock.ExpectExec("UPDATE runs").
		WithArgs("run123", "completed", 10, 5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = ds.UpdateRunStatus(ctx, "run123", "completed", 10, 5)
	assert.NoError(t, err)
}

func TestRecordMatch_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()

	match := &model.MatchResult{
		MatchID:   "match123",
		RunID:     "run123",
		SourceID:  "card:20240115:0",
		LedgerKey: "20240115:1001:3",
		Amount:    100000,
		Date:      time.Now(),
		Status:    model.StatusConfirmable,
		Reason:    "unique candidate",
	}

	mock.ExpectExec("INSERT INTO matches").
		WithArgs(match.MatchID, match.RunID, match.SourceID, match.LedgerKey,
			match.Amount, match.Date, match.Status, match.Reason, match.NearMiss).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = ds.RecordMatch(ctx, match)
	assert.NoError(t, err)
}

func TestRecordAuditEvent_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()

	event := model.AuditEvent{
		Kind:   model.AuditExcludedLine,
		Key:    "20240115:1001:3",
		Reason: "pl_reversal",
	}

	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs("run123", event.Kind, event.Key, event.Reason).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = ds.RecordAuditEvent(ctx, "run123", event)
	assert.NoError(t, err)
}

func TestGetAuditByRunID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()

	rows := sqlmock.NewRows([]string{"kind", "key", "reason"}).
		AddRow("excluded_line", "20240115:1001:3", "pl_reversal").
		AddRow("duplicate_flag", "card:20240116:2", "2 equally valid ledger candidates")

	mock.ExpectQuery("SELECT .* FROM audit_events").
		WithArgs("run123").
		WillReturnRows(rows)

	events, err := ds.GetAuditByRunID(ctx, "run123")
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, model.AuditExcludedLine, events[0].Kind)
	assert.Equal(t, model.AuditDuplicateFlag, events[1].Kind)
}
