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

import "github.com/mkyung/handover/model"

// RemapInventory rewrites inventory account codes to their cost-of-goods-sold
// equivalents ahead of classification, keyed by the three-digit prefix of the
// five-digit account code. Only the account code changes; a rewritten line is
// a copy, the input line is never mutated. Lines outside the inventory
// prefixes pass through untouched.
func (h *Handover) RemapInventory(lines []*model.LedgerLine) []*model.LedgerLine {
	out := make([]*model.LedgerLine, len(lines))
	for i, line := range lines {
		if len(line.AccountCode) == 5 {
			if dest, ok := h.tables.InventoryRemap[line.AccountCode[:3]]; ok {
				remapped := *line
				remapped.AccountCode = dest
				out[i] = &remapped
				continue
			}
		}
		out[i] = line
	}
	return out
}
