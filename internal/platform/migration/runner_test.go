// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidtube/internal/platform/migration"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/vidtube", "pgx5://u:p@localhost:5432/vidtube"},
		{"postgresql://u:p@db/vidtube?sslmode=disable", "pgx5://u:p@db/vidtube?sslmode=disable"},
		{"pgx5://u:p@db/vidtube", "pgx5://u:p@db/vidtube"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in))
		})
	}
}

func TestEmbeddedVersions(t *testing.T) {
	files, err := migration.EmbeddedVersions()
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"000001_init_schemas.up.sql",
		"000002_users_account.up.sql",
		"000003_media.up.sql",
		"000004_social_relations.up.sql",
	}, files)
}
