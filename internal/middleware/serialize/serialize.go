package serialize

import (
	"net/http"
	"sync"
)

// Serialize runs requests one at a time under mu. The same lock is held by
// background jobs that touch the ledger files.
func Serialize(mu sync.Locker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}
