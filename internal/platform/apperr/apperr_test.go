// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Video"), apperr.CodeNotFound, http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("nope"), apperr.CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("nope"), apperr.CodeForbidden, http.StatusForbidden},
		{"conflict", apperr.Conflict("dup"), apperr.CodeConflict, http.StatusConflict},
		{"validation", apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("boom")), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestIsCode_TraversesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("video_service_get_failed: %w", apperr.NotFound("Video"))

	assert.True(t, apperr.IsNotFound(wrapped))
	assert.True(t, apperr.IsCode(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.IsCode(wrapped, apperr.CodeForbidden))
	assert.Equal(t, "Video not found", apperr.NotFound("Video").Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", apperr.CodeOf(nil))
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(errors.New("raw")))
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(apperr.Conflict("dup")))
}

func TestInternal_KeepsCauseForLogging(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "connection refused")
}
