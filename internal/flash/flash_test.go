package flash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/flash"
)

func roundTrip(t *testing.T, store *flash.Store, prev *http.Cookie, msgs ...flash.Message) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/exclude", nil)
	if prev != nil {
		req.AddCookie(prev)
	}

	rec := httptest.NewRecorder()
	require.NoError(t, store.Add(rec, req, msgs...))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	return cookies[0]
}

func TestStore_AddThenPop(t *testing.T) {
	store, err := flash.NewStore([]byte("secret"))
	require.NoError(t, err)

	cookie := roundTrip(t, store, nil, flash.Warning("Transaction abc12345... manually excluded."))
	cookie = roundTrip(t, store, cookie, flash.Info("Refreshing transaction data..."))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	got := store.Pop(rec, req)

	assert.Equal(t, []flash.Message{
		{Level: flash.LevelWarning, Text: "Transaction abc12345... manually excluded."},
		{Level: flash.LevelInfo, Text: "Refreshing transaction data..."},
	}, got)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, flash.DefaultCookieName, cleared[0].Name)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestStore_Pop_RejectsForeignSignature(t *testing.T) {
	theirs, err := flash.NewStore([]byte("other-secret"))
	require.NoError(t, err)

	ours, err := flash.NewStore([]byte("secret"))
	require.NoError(t, err)

	cookie := roundTrip(t, theirs, nil, flash.Danger("forged"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	assert.Empty(t, ours.Pop(httptest.NewRecorder(), req))
}

func TestStore_Pop_NoCookie(t *testing.T) {
	store, err := flash.NewStore([]byte("secret"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Empty(t, store.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestNewStore_EmptySecret(t *testing.T) {
	_, err := flash.NewStore(nil)
	assert.ErrorIs(t, err, flash.ErrEmptySecret)
}
