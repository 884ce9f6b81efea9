package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adampresley/workshopadmin/cmd/admin/internal/tables"
	"github.com/adampresley/workshopadmin/pkg/models"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/viewmodels"
	"github.com/adampresley/workshopadmin/pkg/services"
	"github.com/alitto/pond/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityService struct {
	mu       sync.Mutex
	recorded []services.RemoveResult
}

func (f *fakeActivityService) GetRecent(limit int) ([]models.Activity, error) {
	return []models.Activity{}, nil
}

func (f *fakeActivityService) Prune(cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeActivityService) Record(result services.RemoveResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.recorded = append(f.recorded, result)
	return nil
}

type fakeBackend struct {
	mu           sync.Mutex
	lists        map[string]int
	deleteStatus int
	listBody     string
	listBodies   map[string]string
	listStatus   map[string]int
}

func (b *fakeBackend) listCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lists[name]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/"), "/")

	switch r.Method {
	case http.MethodGet:
		b.mu.Lock()
		b.lists[parts[0]]++
		status, failing := b.listStatus[parts[0]]
		body, ok := b.listBodies[parts[0]]
		b.mu.Unlock()

		if failing {
			w.WriteHeader(status)
			return
		}

		if !ok {
			body = b.listBody
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))

	case http.MethodDelete:
		w.WriteHeader(b.deleteStatus)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type fakePageRenderer struct {
	pageName string
	data     any
}

func (f *fakePageRenderer) Render(w http.ResponseWriter, pageName string, data any) {
	f.pageName = pageName
	f.data = data
	w.WriteHeader(http.StatusOK)
}

type fakeFlashStore struct {
	notification *models.Notification
	saved        int
	cleared      int
}

func (f *fakeFlashStore) Get(r *http.Request) (*models.Notification, error) {
	return f.notification, nil
}

func (f *fakeFlashStore) Set(r *http.Request, notification *models.Notification) error {
	f.notification = notification
	return nil
}

func (f *fakeFlashStore) Clear(w http.ResponseWriter, r *http.Request) error {
	f.notification = nil
	f.cleared++
	return nil
}

func (f *fakeFlashStore) Save(w http.ResponseWriter, r *http.Request) error {
	f.saved++
	return nil
}

type testController struct {
	DashboardController
	activityService *fakeActivityService
	flashStore      *fakeFlashStore
	renderer        *fakePageRenderer
}

func newTestController(t *testing.T, backend *fakeBackend) (DashboardController, *fakeActivityService) {
	t.Helper()

	tc := newPageTestController(t, backend)
	return tc.DashboardController, tc.activityService
}

func newPageTestController(t *testing.T, backend *fakeBackend) testController {
	t.Helper()

	backend.lists = map[string]int{}

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	resourceService := services.NewResourceService(services.ResourceServiceConfig{
		BaseURL: server.URL + "/api",
		Timeout: 5 * time.Second,
	})

	pool := pond.NewPool(2)
	t.Cleanup(func() { _ = pool.Stop().Wait() })

	tc := testController{
		activityService: &fakeActivityService{},
		flashStore:      &fakeFlashStore{},
		renderer:        &fakePageRenderer{},
	}

	tc.DashboardController = NewDashboardController(DashboardControllerConfig{
		ActivityService: tc.activityService,
		FlashStore:      tc.flashStore,
		Pool:            pool,
		Renderer:        tc.renderer,
		SnapshotService: services.NewSnapshotService(services.SnapshotServiceConfig{ResourceService: resourceService}),
		TableRenderer:   tables.NewHtmlTableRenderer(),
	})

	return tc
}

func newRequest(method, target string, pathValues map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("HX-Request", "true")

	for key, value := range pathValues {
		r.SetPathValue(key, value)
	}

	return r
}

func toastFrom(t *testing.T, w *httptest.ResponseRecorder) models.Notification {
	t.Helper()

	trigger := map[string]models.Notification{}
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("HX-Trigger")), &trigger))
	return trigger["showToast"]
}

func TestEntityRowsRendersFreshRows(t *testing.T) {
	backend := &fakeBackend{listBody: `[{"client_id":1,"name":"Ana","email":"a@x.com"}]`}
	controller, _ := newTestController(t, backend)

	w := httptest.NewRecorder()
	controller.EntityRows(w, newRequest(http.MethodGet, "/entities/client/rows", map[string]string{"entity": "client"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<td>Ana</td>")
	assert.Contains(t, w.Body.String(), `hx-delete="/entities/client/1"`)
	assert.Equal(t, 1, backend.listCount("client"))
}

func TestEntityRowsUnknownEntity(t *testing.T) {
	controller, _ := newTestController(t, &fakeBackend{listBody: `[]`})

	w := httptest.NewRecorder()
	controller.EntityRows(w, newRequest(http.MethodGet, "/entities/setting/rows", map[string]string{"entity": "setting"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteActionSuccessRelistsOnce(t *testing.T) {
	backend := &fakeBackend{
		deleteStatus: http.StatusNoContent,
		listBody:     `[{"work_id":2,"description":"Tyres","cost":80}]`,
	}
	controller, activityService := newTestController(t, backend)

	w := httptest.NewRecorder()
	controller.DeleteAction(w, newRequest(http.MethodDelete, "/entities/work/1", map[string]string{"entity": "work", "id": "1"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, backend.listCount("work"))
	assert.Empty(t, w.Header().Get("HX-Reswap"))
	assert.Contains(t, w.Body.String(), `<tr id="work-row-2">`)

	toast := toastFrom(t, w)
	assert.Equal(t, models.NotificationSuccess, toast.Level)
	assert.Equal(t, "Work deleted successfully!", toast.Message)

	require.Len(t, activityService.recorded, 1)
	assert.Equal(t, services.RemoveDeleted, activityService.recorded[0].Outcome)
}

func TestDeleteActionNotFoundDoesNotRelist(t *testing.T) {
	backend := &fakeBackend{deleteStatus: http.StatusNotFound, listBody: `[]`}
	controller, activityService := newTestController(t, backend)

	w := httptest.NewRecorder()
	controller.DeleteAction(w, newRequest(http.MethodDelete, "/entities/vehicle/7", map[string]string{"entity": "vehicle", "id": "7"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, backend.listCount("vehicle"))
	assert.Equal(t, "none", w.Header().Get("HX-Reswap"))

	toast := toastFrom(t, w)
	assert.Equal(t, models.NotificationWarning, toast.Level)
	assert.Contains(t, toast.Message, "not found")

	require.Len(t, activityService.recorded, 1)
	assert.Equal(t, uint(7), activityService.recorded[0].ID)
	assert.Equal(t, services.RemoveNotFound, activityService.recorded[0].Outcome)
}

func TestDeleteActionServerErrorDoesNotRelist(t *testing.T) {
	backend := &fakeBackend{deleteStatus: http.StatusInternalServerError, listBody: `[]`}
	controller, _ := newTestController(t, backend)

	w := httptest.NewRecorder()
	controller.DeleteAction(w, newRequest(http.MethodDelete, "/entities/employee/3", map[string]string{"entity": "employee", "id": "3"}))

	assert.Equal(t, 0, backend.listCount("employee"))
	assert.Equal(t, "none", w.Header().Get("HX-Reswap"))

	toast := toastFrom(t, w)
	assert.Equal(t, models.NotificationError, toast.Level)
	assert.Equal(t, "Failed to delete employee. Status: 500 - Internal Server Error", toast.Message)
}

func TestDeleteActionRejectsUnknownEntity(t *testing.T) {
	backend := &fakeBackend{deleteStatus: http.StatusOK, listBody: `[]`}
	controller, activityService := newTestController(t, backend)

	w := httptest.NewRecorder()
	controller.DeleteAction(w, newRequest(http.MethodDelete, "/entities/setting/1", map[string]string{"entity": "setting", "id": "1"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, activityService.recorded)
}

func TestDashboardPageShowsEmptyAndFailedTables(t *testing.T) {
	backend := &fakeBackend{
		listBody:   `[{"client_id":1,"name":"Ana","email":"a@x.com"}]`,
		listBodies: map[string]string{"vehicle": `[]`},
		listStatus: map[string]int{"employee": http.StatusInternalServerError},
	}
	tc := newPageTestController(t, backend)

	w := httptest.NewRecorder()
	tc.DashboardPage(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "pages/dashboard", tc.renderer.pageName)

	viewData, ok := tc.renderer.data.(viewmodels.Dashboard)
	require.True(t, ok)
	require.Len(t, viewData.Tables, len(models.Entities()))
	assert.False(t, viewData.IsError)

	failed := []string{}
	empty := []string{}

	for _, table := range viewData.Tables {
		if table.Failed {
			failed = append(failed, table.Entity.Name)
			assert.Contains(t, string(table.HTML), "table-error")
			assert.Contains(t, string(table.HTML), "Status: 500 - Internal Server Error")
		}

		if !table.Failed && table.Count == 0 {
			empty = append(empty, table.Entity.Name)
			assert.Contains(t, string(table.HTML), "table-empty")
		}
	}

	assert.Equal(t, []string{"employee"}, failed)
	assert.Equal(t, []string{"vehicle"}, empty)

	for _, entity := range models.Entities() {
		assert.Equal(t, 1, backend.listCount(entity.Name), entity.Name)
	}
}

func TestEntityTablesSkipsUnfilledSnapshots(t *testing.T) {
	tc := newPageTestController(t, &fakeBackend{listBody: `[]`})

	snapshots := []services.Snapshot{
		{},
		{Entity: models.Clients, Rows: []models.Row{{ID: 1, Cells: []string{"1", "Ana", "a@x.com"}}}},
		{},
	}

	got, err := tc.entityTables(snapshots)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "client", got[0].Entity.Name)
	assert.Equal(t, 1, got[0].Count)
}

func TestEntityPageRendersTable(t *testing.T) {
	backend := &fakeBackend{listBody: `[{"vehicle_id":4,"license_plate":"ABC-123","brand":"Seat","model":"Ibiza","year":2019}]`}
	tc := newPageTestController(t, backend)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/entities/vehicle", nil)
	r.SetPathValue("entity", "vehicle")
	tc.EntityPage(w, r)

	assert.Equal(t, "pages/entity", tc.renderer.pageName)

	viewData, ok := tc.renderer.data.(viewmodels.EntityPage)
	require.True(t, ok)
	assert.Equal(t, "vehicle", viewData.Table.Entity.Name)
	assert.Equal(t, 1, viewData.Table.Count)
	assert.False(t, viewData.Table.Failed)
	assert.Contains(t, string(viewData.Table.HTML), "<td>ABC-123</td>")
	assert.Equal(t, 1, backend.listCount("vehicle"))
}

func TestEntityPageUnknownEntity(t *testing.T) {
	tc := newPageTestController(t, &fakeBackend{listBody: `[]`})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/entities/setting", nil)
	r.SetPathValue("entity", "setting")
	tc.EntityPage(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, tc.renderer.pageName)
}

func TestDeleteFormActionNotFoundFlashesAndRedirects(t *testing.T) {
	backend := &fakeBackend{deleteStatus: http.StatusNotFound, listBody: `[]`}
	tc := newPageTestController(t, backend)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/entities/vehicle/7/delete", nil)
	r.SetPathValue("entity", "vehicle")
	r.SetPathValue("id", "7")
	tc.DeleteFormAction(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/entities/vehicle", w.Header().Get("Location"))
	assert.Equal(t, 0, backend.listCount("vehicle"))

	require.NotNil(t, tc.flashStore.notification)
	assert.Equal(t, models.NotificationWarning, tc.flashStore.notification.Level)
	assert.Contains(t, tc.flashStore.notification.Message, "not found")
	assert.Equal(t, 1, tc.flashStore.saved)

	require.Len(t, tc.activityService.recorded, 1)
	assert.Equal(t, services.RemoveNotFound, tc.activityService.recorded[0].Outcome)
}
