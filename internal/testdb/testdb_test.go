package testdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/testdb"
)

func TestOpenIsolatesDatabases(t *testing.T) {
	first := testdb.Open(t)
	second := testdb.Open(t)

	room := &domain.Room{Code: "CB01", Building: "CB", Capacity: 40}
	testdb.Insert(t, first, room)
	assert.NotZero(t, room.ID)

	var count int64
	require.NoError(t, second.Model(&domain.Room{}).Count(&count).Error)
	assert.Zero(t, count)
}
