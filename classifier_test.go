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

package handover

import (
	"testing"

	"github.com/mkyung/handover/model"
	"github.com/stretchr/testify/assert"
)

func TestClassifyBuckets(t *testing.T) {
	engine := newTestEngine()
	audit := &model.AuditTrail{}

	lines := []*model.LedgerLine{
		{Date: day("20240110"), AccountCode: "40100", CategoryCode: 14, Credit: 1000000, Row: 0},
		{Date: day("20240110"), AccountCode: "45101", CategoryCode: 14, Debit: 400000, Row: 1},
		{Date: day("20240110"), AccountCode: "81200", CategoryCode: 19, Debit: 50000, Row: 2},
		{Date: day("20240110"), AccountCode: "90100", CategoryCode: 20, Credit: 30000, Row: 3},
		{Date: day("20240110"), AccountCode: "93100", CategoryCode: 21, Debit: 20000, Row: 4},
	}

	records := engine.Classify(lines, audit)

	assert.Len(t, records, 5)
	assert.Equal(t, model.BucketRevenue, records[0].Bucket)
	assert.Equal(t, int64(1000000), records[0].Net)

	// The COGS family wins by account code even when the category code says
	// revenue; the remap destination decides.
	assert.Equal(t, model.BucketCostOfSales, records[1].Bucket)
	assert.Equal(t, int64(400000), records[1].Net)

	assert.Equal(t, model.BucketSGA, records[2].Bucket)
	assert.Equal(t, int64(50000), records[2].Net)
	assert.Equal(t, model.BucketNonOpIncome, records[3].Bucket)
	assert.Equal(t, int64(30000), records[3].Net)
	assert.Equal(t, model.BucketNonOpExpense, records[4].Bucket)
	assert.Equal(t, int64(20000), records[4].Net)
	assert.Empty(t, audit.Events)
}

func TestClassifyContraEntryNetsOut(t *testing.T) {
	engine := newTestEngine()
	audit := &model.AuditTrail{}

	// Both sides populated: one record on the net, never two.
	lines := []*model.LedgerLine{
		{Date: day("20240215"), AccountCode: "81200", CategoryCode: 19, Debit: 100000, Credit: 30000, Row: 0},
		{Date: day("20240215"), AccountCode: "40100", CategoryCode: 14, Debit: 25000, Credit: 100000, Row: 1},
	}

	records := engine.Classify(lines, audit)

	assert.Len(t, records, 2)
	assert.Equal(t, int64(70000), records[0].Net)
	assert.Equal(t, int64(75000), records[1].Net)
}

func TestClassifyBalanceSheetGap(t *testing.T) {
	engine := newTestEngine()
	audit := &model.AuditTrail{}

	lines := []*model.LedgerLine{
		{Date: day("20240110"), AccountCode: "10301", CategoryCode: 2, Debit: 500000, Row: 0},
		{Date: day("20240110"), AccountCode: "81200", CategoryCode: 19, Debit: 50000, Row: 1},
	}

	records := engine.Classify(lines, audit)

	assert.Len(t, records, 1)
	assert.Equal(t, model.BucketSGA, records[0].Bucket)
	assert.Equal(t, 1, audit.Count(model.AuditClassificationGap))
	assert.Equal(t, lines[0].Key(), audit.Events[0].Key)
}

func TestClassifyNegativeNetSurvives(t *testing.T) {
	engine := newTestEngine()
	audit := &model.AuditTrail{}

	// A refund credited against an expense account produces a negative net;
	// it stays in the record set and reduces the bucket total downstream.
	lines := []*model.LedgerLine{
		{Date: day("20240310"), AccountCode: "81200", CategoryCode: 19, Credit: 40000, Row: 0},
	}

	records := engine.Classify(lines, audit)

	assert.Len(t, records, 1)
	assert.Equal(t, int64(-40000), records[0].Net)
}
