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

	"github.com/mkyung/handover/model"
)

// IDataSource persists engine runs, their match results and audit events.
type IDataSource interface {
	RecordRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	GetRunsByCompany(ctx context.Context, company string) ([]*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID, status string, matchedCount, unmatchedCount int) error
	RecordMatch(ctx context.Context, match *model.MatchResult) error
	GetMatchesByRunID(ctx context.Context, runID string) ([]*model.MatchResult, error)
	RecordAuditEvent(ctx context.Context, runID string, event model.AuditEvent) error
	GetAuditByRunID(ctx context.Context, runID string) ([]model.AuditEvent, error)
}
