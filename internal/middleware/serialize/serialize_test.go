package serialize

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialize_HoldsLockDuringRequest(t *testing.T) {
	var mu sync.Mutex
	locked := false

	handler := Serialize(&mu)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locked = !mu.TryLock()
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, locked)
	assert.True(t, mu.TryLock(), "lock must be released after the request")
}

func TestSerialize_ReleasesLockOnPanic(t *testing.T) {
	var mu sync.Mutex

	handler := Serialize(&mu)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	assert.Panics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.True(t, mu.TryLock())
}
