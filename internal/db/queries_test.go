package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutAndGetValue(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	_, ok, err := GetValue(ctx, db, "verso:chapter:v2:juan:3")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, PutValue(ctx, db, "verso:chapter:v2:juan:3", `{"a":1}`))
	v, ok, err := GetValue(ctx, db, "verso:chapter:v2:juan:3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, v)
}

func TestPutValue_Overwrites(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, PutValue(ctx, db, "k", "old"))
	require.NoError(t, PutValue(ctx, db, "k", "new"))

	v, _, err := GetValue(ctx, db, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestDeleteValue(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, PutValue(ctx, db, "k", "v"))
	require.NoError(t, DeleteValue(ctx, db, "k"))
	require.NoError(t, DeleteValue(ctx, db, "k"))

	_, ok, err := GetValue(ctx, db, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListKeys_PrefixAndOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	for _, k := range []string{
		"verso:chapter:v2:salmos:23",
		"verso:chapter:v2:juan:3",
		"verso:chapter:v1:juan:3",
		"other:key",
	} {
		require.NoError(t, PutValue(ctx, db, k, "x"))
	}

	keys, err := ListKeys(ctx, db, "verso:chapter:v2:")
	require.NoError(t, err)
	assert.Equal(t, []string{"verso:chapter:v2:juan:3", "verso:chapter:v2:salmos:23"}, keys)

	none, err := ListKeys(ctx, db, "missing:")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListKeys_WildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, PutValue(ctx, db, "a_b", "x"))
	require.NoError(t, PutValue(ctx, db, "axb", "x"))

	keys, err := ListKeys(ctx, db, "a_")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_b"}, keys)
}

func TestKVStore_ImplementsPort(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore(openTestDB(t))

	require.NoError(t, store.Set(ctx, "p:1", "one"))
	require.NoError(t, store.Set(ctx, "p:2", "two"))

	v, ok, err := store.Get(ctx, "p:2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	keys, err := store.Keys(ctx, "p:")
	require.NoError(t, err)
	assert.Equal(t, []string{"p:1", "p:2"}, keys)

	require.NoError(t, store.Remove(ctx, "p:1"))
	keys, err = store.Keys(ctx, "p:")
	require.NoError(t, err)
	assert.Equal(t, []string{"p:2"}, keys)
}
