// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_IsValidAndOrdered(t *testing.T) {
	first, second := New(), New()

	assert.True(t, Valid(first))
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:13], second[:13])
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("0190a8b2-0000-7000-8000-000000000001"))
	assert.True(t, Valid("0190A8B2-0000-7000-8000-000000000001"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-uuid"))
	assert.False(t, Valid("{0190a8b2-0000-7000-8000-000000000001}"))
	assert.False(t, Valid("0190a8b2-0000-7000-8000-00000000000g"))
}
