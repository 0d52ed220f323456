package localstore_test

import (
	"context"
	"testing"

	"github.com/caaaae/E-Leave/internal/localstore"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := localstore.NewFileStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "leave_form_draft")
	assert.ErrorIs(t, err, localstore.ErrNotFound)

	assert.NoError(t, store.Set(ctx, "leave_form_draft", `{"department":"Finance"}`))

	got, err := store.Get(ctx, "leave_form_draft")
	assert.NoError(t, err)
	assert.Equal(t, `{"department":"Finance"}`, got)

	// overwrite, not append
	assert.NoError(t, store.Set(ctx, "leave_form_draft", `{}`))
	got, err = store.Get(ctx, "leave_form_draft")
	assert.NoError(t, err)
	assert.Equal(t, `{}`, got)
}

func TestFileStoreDeleteIdempotent(t *testing.T) {
	store, err := localstore.NewFileStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "access_token", "abc"))
	assert.NoError(t, store.Delete(ctx, "access_token"))
	assert.NoError(t, store.Delete(ctx, "access_token"))

	_, err = store.Get(ctx, "access_token")
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	store := localstore.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "k", "v"))
	got, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", got)

	assert.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, localstore.ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestRedisStore(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := localstore.NewRedisStore(rdb)
	ctx := context.Background()

	mock.ExpectSet("leave_form_draft", `{"leave_type":"Sick Leave"}`, 0).SetVal("OK")
	assert.NoError(t, store.Set(ctx, "leave_form_draft", `{"leave_type":"Sick Leave"}`))

	mock.ExpectGet("leave_form_draft").SetVal(`{"leave_type":"Sick Leave"}`)
	got, err := store.Get(ctx, "leave_form_draft")
	assert.NoError(t, err)
	assert.Equal(t, `{"leave_type":"Sick Leave"}`, got)

	mock.ExpectGet("missing").RedisNil()
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, localstore.ErrNotFound)

	mock.ExpectDel("leave_form_draft").SetVal(1)
	assert.NoError(t, store.Delete(ctx, "leave_form_draft"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
