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
package model

// AuditKind tags an audit-trail event with its error-taxonomy class.
type AuditKind string

const (
	AuditExcludedLine      AuditKind = "excluded_line"
	AuditMalformedRecord   AuditKind = "malformed_record"
	AuditClassificationGap AuditKind = "classification_gap"
	AuditUnresolvedMatch   AuditKind = "unresolved_match"
	AuditDuplicateFlag     AuditKind = "duplicate_flag"
	AuditCrossCheck        AuditKind = "crosscheck_mismatch"
)

// AuditEvent is one reviewable entry in the run's audit trail. Nothing in
// the taxonomy aborts a run; everything lands here instead.
type AuditEvent struct {
	Kind   AuditKind `json:"kind"`
	Key    string    `json:"key"`
	Reason string    `json:"reason"`
}

// AuditTrail collects audit events over one engine invocation.
type AuditTrail struct {
	Events []AuditEvent `json:"events"`
}

// Add appends an event to the trail.
func (a *AuditTrail) Add(kind AuditKind, key, reason string) {
	a.Events = append(a.Events, AuditEvent{Kind: kind, Key: key, Reason: reason})
}

// Count returns the number of events of the given kind.
func (a *AuditTrail) Count(kind AuditKind) int {
	n := 0
	for _, e := range a.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
