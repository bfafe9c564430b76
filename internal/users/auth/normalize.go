// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeIdentifier canonicalizes a handle or email for storage and lookup.
// A [cases.Caser] is stateful, so one is built per call.
func NormalizeIdentifier(value string) string {
	caser := cases.Fold()
	return caser.String(norm.NFKC.String(strings.TrimSpace(value)))
}
