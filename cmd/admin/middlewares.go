package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/flash"
	"github.com/adampresley/workshopadmin/pkg/models"
)

/*
newFlashMiddleware moves a flash notification out of the session and into
the request context, so it is shown exactly once on the next full page.
*/
func newFlashMiddleware(flashStore flash.FlashStore, excludedPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				err          error
				notification *models.Notification
			)

			path := r.URL.Path

			if r.Method != http.MethodGet || httphelpers.IsHtmx(r) {
				next.ServeHTTP(w, r)
				return
			}

			for _, excludedPath := range excludedPaths {
				if strings.HasPrefix(path, excludedPath) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if notification, err = flashStore.Get(r); err != nil || notification == nil {
				next.ServeHTTP(w, r)
				return
			}

			_ = flashStore.Clear(w, r)

			if err = flashStore.Save(w, r); err != nil {
				slog.Error("error saving session after reading flash", "error", err)
			}

			next.ServeHTTP(w, r.WithContext(flash.WithFlash(r.Context(), notification)))
		})
	}
}
