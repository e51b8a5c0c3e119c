package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"haircut"}`))

		var p payload
		require.NoError(t, DecodeJSON(r, &p))
		assert.Equal(t, "haircut", p.Name)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"haircut","extra":1}`))

		var p payload
		err := DecodeJSON(r, &p)
		require.Error(t, err)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var p payload
		err := DecodeJSON(r, &p)
		require.Error(t, err)
	})
}

func TestRespondError(t *testing.T) {
	t.Run("writes status and error body", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondBadRequest(w, "invalid booking ID")

		assert.Equal(t, 400, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error":"invalid booking ID"}`, w.Body.String())
	})

	t.Run("internal error hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondInternalError(w)

		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})

	t.Run("error messages stay in one language", func(t *testing.T) {
		// Тексты ошибок отдаются клиенту как есть, держим их в ASCII
		w := httptest.NewRecorder()
		RespondNotFound(w, "booking not found")

		for _, c := range w.Body.String() {
			assert.Less(t, c, rune(128), "error body must be plain ASCII")
		}
	})
}
