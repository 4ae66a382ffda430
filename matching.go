package handover

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mkyung/handover/model"
	"github.com/sirupsen/logrus"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const defaultMatchWorkers = 10

// matchCandidates is the read-phase output for one source record: every
// ledger line that shares its date, counterparty identity and amount.
type matchCandidates struct {
	candidates []*model.LedgerLine
	nearMiss   string
}

// MatchRecords reconciles the credit-card auto-journal and slip feeds against
// the general ledger. Candidate gathering runs in parallel across source
// records; the claim table is then committed in a single deterministic pass
// ordered by source natural key, so the same input always yields the same
// assignment. One ledger line backs at most one source record.
func (h *Handover) MatchRecords(ctx context.Context, ledger []*model.LedgerLine, cards []*model.CardAutoLine, slips []*model.SlipLine, audit *model.AuditTrail) []model.MatchResult {
	byDate := make(map[string][]*model.LedgerLine)
	for _, line := range ledger {
		byDate[line.DateKey()] = append(byDate[line.DateKey()], line)
	}

	sources := make([]model.SourceRecord, 0, len(cards)+len(slips))
	for _, card := range cards {
		sources = append(sources, card)
	}
	for _, slip := range slips {
		sources = append(sources, slip)
	}

	workerCount := h.workers
	if workerCount <= 0 {
		workerCount = defaultMatchWorkers
	}
	semaphore := make(chan struct{}, workerCount)

	// Read phase: gather candidates per record, no shared state touched.
	gathered := make([]*matchCandidates, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		if passthrough(src.Status()) {
			continue
		}
		wg.Add(1)
		go func(i int, src model.SourceRecord) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			gathered[i] = gatherCandidates(src, byDate)
		}(i, src)
	}
	wg.Wait()

	// Commit phase: single-threaded, ordered by source natural key —
	// never "first seen".
	order := make([]int, len(sources))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return sources[order[a]].RecordID() < sources[order[b]].RecordID()
	})

	claims := make(map[string]string) // ledger-line key -> claiming source record
	results := make([]model.MatchResult, 0, len(sources))
	for _, i := range order {
		results = append(results, h.commitMatch(sources[i], gathered[i], claims, audit))
	}

	matched := 0
	for i := range results {
		if results[i].Matched() {
			matched++
		}
	}
	logrus.Infof("matching: %d of %d source records matched", matched, len(results))
	return results
}

// passthrough reports whether the upstream status exempts a record from
// matching entirely.
func passthrough(status model.MatchStatus) bool {
	return status == model.StatusExcluded || status == model.StatusDeleted
}

// gatherCandidates narrows the same-date ledger lines by counterparty
// identity, then by amount. When nothing survives it records the closest
// same-date counterparty name as a manual-review hint.
func gatherCandidates(src model.SourceRecord, byDate map[string][]*model.LedgerLine) *matchCandidates {
	sameDate := byDate[src.RecordDate().Format("20060102")]
	identity := src.RecordCounterparty()
	amount := src.RecordAmount()

	mc := &matchCandidates{}
	for _, line := range sameDate {
		if !identity.Matches(line.Counterparty()) {
			continue
		}
		if !amountMatches(amount, line.SignedAmount()) {
			continue
		}
		mc.candidates = append(mc.candidates, line)
	}
	if len(mc.candidates) == 0 {
		mc.nearMiss = nearestCounterparty(identity.Name, sameDate)
	}
	return mc
}

// amountMatches compares on absolute equality. A negative source total is a
// refund and must line up with a negative ledger amount; it is never coerced
// positive.
func amountMatches(src, ledger int64) bool {
	if src < 0 {
		return ledger == src
	}
	if ledger < 0 {
		ledger = -ledger
	}
	return ledger == src
}

// commitMatch resolves one source record against the shared claim table.
// Tie-break order: reference-number distance, then unclaimed preference,
// then "duplicate" with no auto-resolution.
func (h *Handover) commitMatch(src model.SourceRecord, mc *matchCandidates, claims map[string]string, audit *model.AuditTrail) model.MatchResult {
	result := model.MatchResult{
		MatchID:  model.GenerateUUIDWithSuffix("match"),
		SourceID: src.RecordID(),
		Amount:   src.RecordAmount(),
		Date:     src.RecordDate(),
	}

	if passthrough(src.Status()) {
		result.Status = src.Status()
		result.Reason = "passed through unchanged"
		return result
	}

	candidates := mc.candidates
	if len(candidates) == 0 {
		result.Status = model.StatusNotRecommended
		result.Reason = "no ledger counterpart found"
		result.NearMiss = mc.nearMiss
		src.SetStatus(model.StatusNotRecommended)
		flagManualReview(src)
		audit.Add(model.AuditUnresolvedMatch, src.RecordID(), result.Reason)
		return result
	}

	tieBreak := ""
	if len(candidates) > 1 && src.RefNumber() > 0 {
		narrowed := closestByRef(candidates, src.RefNumber())
		if len(narrowed) < len(candidates) {
			tieBreak = "reference-number distance"
		}
		candidates = narrowed
	}
	if len(candidates) > 1 {
		unclaimed := make([]*model.LedgerLine, 0, len(candidates))
		for _, line := range candidates {
			if _, taken := claims[line.Key()]; !taken {
				unclaimed = append(unclaimed, line)
			}
		}
		if len(unclaimed) > 0 {
			if len(unclaimed) < len(candidates) {
				tieBreak = "unclaimed preference"
			}
			candidates = unclaimed
		}
	}

	if len(candidates) == 1 {
		line := candidates[0]
		if owner, taken := claims[line.Key()]; taken {
			result.Status = model.StatusDuplicate
			result.Reason = fmt.Sprintf("ledger line %s already matched by %s", line.Key(), owner)
			src.SetStatus(model.StatusDuplicate)
			audit.Add(model.AuditDuplicateFlag, src.RecordID(), result.Reason)
			return result
		}
		claims[line.Key()] = src.RecordID()
		result.LedgerKey = line.Key()
		if src.Status() == model.StatusConfirmed {
			result.Status = model.StatusConfirmed
			result.Reason = "re-validated"
		} else {
			result.Status = model.StatusConfirmable
			result.Reason = "unique candidate"
		}
		if tieBreak != "" {
			result.Reason = tieBreak
		}
		src.SetStatus(result.Status)
		return result
	}

	result.Status = model.StatusDuplicate
	result.Reason = fmt.Sprintf("%d equally valid ledger candidates", len(candidates))
	src.SetStatus(model.StatusDuplicate)
	audit.Add(model.AuditDuplicateFlag, src.RecordID(), result.Reason)
	return result
}

// closestByRef keeps the candidates whose slip number is numerically closest
// to the source reference number. Equidistant candidates all survive.
func closestByRef(candidates []*model.LedgerLine, ref int64) []*model.LedgerLine {
	best := int64(-1)
	for _, line := range candidates {
		d := absInt64(line.SlipNo - ref)
		if best == -1 || d < best {
			best = d
		}
	}
	closest := make([]*model.LedgerLine, 0, len(candidates))
	for _, line := range candidates {
		if absInt64(line.SlipNo-ref) == best {
			closest = append(closest, line)
		}
	}
	return closest
}

// nearestCounterparty returns the same-date counterparty name with the
// smallest Levenshtein distance to the source name. The hint annotates the
// audit output for manual review; it never influences match assignment. Ties
// resolve to the lexicographically smaller name so the output stays stable.
func nearestCounterparty(name string, sameDate []*model.LedgerLine) string {
	normalized := model.NormalizeName(name)
	if normalized == "" {
		return ""
	}
	best := ""
	bestDistance := -1
	for _, line := range sameDate {
		candidate := model.NormalizeName(line.CounterpartyName)
		if candidate == "" {
			continue
		}
		d := levenshtein.DistanceForStrings([]rune(normalized), []rune(candidate), levenshtein.DefaultOptions)
		if bestDistance == -1 || d < bestDistance || (d == bestDistance && line.CounterpartyName < best) {
			best = line.CounterpartyName
			bestDistance = d
		}
	}
	return best
}

func flagManualReview(src model.SourceRecord) {
	if card, ok := src.(*model.CardAutoLine); ok {
		card.ManualReview = true
	}
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
