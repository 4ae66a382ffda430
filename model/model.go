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

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUIDWithSuffix creates a new UUID prefixed with a module tag,
// e.g. "run_9f2c...". Used for run and match identifiers.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", module, id.String())
}

// NormalizeName folds a counterparty name for comparison: case is ignored
// and all whitespace is stripped. The bookkeeping platform is inconsistent
// about spacing between the card feed and the journal.
func NormalizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Counterparty identifies the external party on a transaction. Any one of
// the three identifiers may be empty depending on the source collection.
type Counterparty struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	RegistrationNo string `json:"registration_no"`
}

// Matches reports whether two counterparty identities refer to the same
// party. Code match wins when both sides carry a code; otherwise a
// normalized name match or a registration-number match is accepted.
func (c Counterparty) Matches(other Counterparty) bool {
	if c.Code != "" && other.Code != "" {
		return c.Code == other.Code
	}
	if c.Name != "" && other.Name != "" &&
		NormalizeName(c.Name) == NormalizeName(other.Name) {
		return true
	}
	if c.RegistrationNo != "" && other.RegistrationNo != "" {
		return c.RegistrationNo == other.RegistrationNo
	}
	return false
}
