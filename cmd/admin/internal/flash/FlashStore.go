package flash

import (
	"context"
	"net/http"

	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/workshopadmin/pkg/models"
)

/*
FlashStore keeps one notification between a form post and the page the
user is redirected to.
*/
type FlashStore interface {
	Get(r *http.Request) (*models.Notification, error)
	Set(r *http.Request, notification *models.Notification) error
	Clear(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
}

type SessionFlashStore struct {
	session sessions.Session[*models.Notification]
}

func NewSessionFlashStore(session sessions.Session[*models.Notification]) SessionFlashStore {
	return SessionFlashStore{
		session: session,
	}
}

func (s SessionFlashStore) Get(r *http.Request) (*models.Notification, error) {
	return s.session.Get(r)
}

func (s SessionFlashStore) Set(r *http.Request, notification *models.Notification) error {
	return s.session.Set(r, notification)
}

func (s SessionFlashStore) Clear(w http.ResponseWriter, r *http.Request) error {
	return s.session.Destroy(w, r)
}

func (s SessionFlashStore) Save(w http.ResponseWriter, r *http.Request) error {
	return s.session.Save(w, r)
}

func WithFlash(ctx context.Context, notification *models.Notification) context.Context {
	return context.WithValue(ctx, "flash", notification)
}

func FromContext(ctx context.Context) *models.Notification {
	if result, ok := ctx.Value("flash").(*models.Notification); ok {
		return result
	}

	return nil
}
