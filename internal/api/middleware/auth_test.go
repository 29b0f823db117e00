package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:test-token"

// signInitData produces a signed init-data string the way the Telegram
// client does
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func TestVerifyInitData(t *testing.T) {
	fields := map[string]string{
		"auth_date": "1756700000",
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
		"user":      `{"id":1001,"first_name":"Alice"}`,
	}

	t.Run("valid signature", func(t *testing.T) {
		initData := signInitData(t, testBotToken, fields)
		assert.NoError(t, VerifyInitData(initData, testBotToken))
	})

	t.Run("wrong token", func(t *testing.T) {
		initData := signInitData(t, "99999:other-token", fields)
		assert.Error(t, VerifyInitData(initData, testBotToken))
	})

	t.Run("tampered field", func(t *testing.T) {
		initData := signInitData(t, testBotToken, fields)
		values, err := url.ParseQuery(initData)
		require.NoError(t, err)
		values.Set("user", `{"id":666,"first_name":"Mallory"}`)
		assert.Error(t, VerifyInitData(values.Encode(), testBotToken))
	})

	t.Run("missing hash", func(t *testing.T) {
		assert.Error(t, VerifyInitData("auth_date=1756700000", testBotToken))
	})
}

func TestTelegramAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("disabled without token", func(t *testing.T) {
		handler := TelegramAuth("")(next)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		handler := TelegramAuth(testBotToken)(next)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects bad signature", func(t *testing.T) {
		handler := TelegramAuth(testBotToken)(next)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(InitDataHeader, "auth_date=1&hash=deadbeef")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("accepts signed init data", func(t *testing.T) {
		handler := TelegramAuth(testBotToken)(next)

		initData := signInitData(t, testBotToken, map[string]string{
			"auth_date": "1756700000",
			"user":      `{"id":1001,"first_name":"Alice"}`,
		})
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(InitDataHeader, initData)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}
