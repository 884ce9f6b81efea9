package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/flash"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/pages"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/tables"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/viewmodels"
	"github.com/adampresley/workshopadmin/pkg/models"
	"github.com/adampresley/workshopadmin/pkg/services"
	"github.com/alitto/pond/v2"
)

type DashboardHandlers interface {
	DashboardPage(w http.ResponseWriter, r *http.Request)
	EntityPage(w http.ResponseWriter, r *http.Request)
	EntityRows(w http.ResponseWriter, r *http.Request)
	DeleteAction(w http.ResponseWriter, r *http.Request)
	DeleteFormAction(w http.ResponseWriter, r *http.Request)
}

type DashboardControllerConfig struct {
	ActivityService services.ActivityServicer
	FlashStore      flash.FlashStore
	Pool            pond.Pool
	Renderer        pages.PageRenderer
	SnapshotService services.SnapshotServicer
	TableRenderer   tables.TableRenderer
}

type DashboardController struct {
	activityService services.ActivityServicer
	flashStore      flash.FlashStore
	pool            pond.Pool
	renderer        pages.PageRenderer
	snapshotService services.SnapshotServicer
	tableRenderer   tables.TableRenderer
}

func NewDashboardController(config DashboardControllerConfig) DashboardController {
	return DashboardController{
		activityService: config.ActivityService,
		flashStore:      config.FlashStore,
		pool:            config.Pool,
		renderer:        config.Renderer,
		snapshotService: config.SnapshotService,
		tableRenderer:   config.TableRenderer,
	}
}

/*
GET /
*/
func (c DashboardController) DashboardPage(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	pageName := "pages/dashboard"

	viewData := viewmodels.Dashboard{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/toast.js"},
			},
		},
		Tables: []viewmodels.EntityTable{},
	}

	viewData.ApplyFlash(r)

	entities := models.Entities()
	snapshots := make([]services.Snapshot, len(entities))
	group := c.pool.NewGroup()

	for index, entity := range entities {
		group.Submit(func() {
			snapshots[index] = c.snapshotService.Refresh(r.Context(), entity)
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("error waiting for dashboard refreshes", "error", err)
	}

	if viewData.Tables, err = c.entityTables(snapshots); err != nil {
		viewData.IsError = true
		viewData.Message = "There was a problem drawing the dashboard."
	}

	c.renderer.Render(w, pageName, viewData)
}

/*
GET /entities/{entity}
*/
func (c DashboardController) EntityPage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		entity models.Entity
	)

	pageName := "pages/entity"

	if entity, err = c.lookupEntity(r); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "entity not found")
		return
	}

	viewData := viewmodels.EntityPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/toast.js"},
			},
		},
	}

	viewData.ApplyFlash(r)

	snapshot := c.snapshotService.Refresh(r.Context(), entity)

	if viewData.Table, err = c.entityTable(snapshot); err != nil {
		slog.Error("error rendering entity table", "error", err, "entity", entity.Name)
		viewData.IsError = true
		viewData.Message = fmt.Sprintf("There was a problem drawing the %s table.", entity.Title)
	}

	c.renderer.Render(w, pageName, viewData)
}

/*
GET /entities/{entity}/rows
*/
func (c DashboardController) EntityRows(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		entity models.Entity
	)

	if entity, err = c.lookupEntity(r); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "entity not found")
		return
	}

	snapshot := c.snapshotService.Refresh(r.Context(), entity)
	c.writeRows(w, snapshot)
}

/*
DELETE /entities/{entity}/{id}

Only a confirmed deletion refreshes the table. Every outcome is reported
through the showToast event in the HX-Trigger header.
*/
func (c DashboardController) DeleteAction(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		entity models.Entity
	)

	if entity, err = c.lookupEntity(r); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "entity not found")
		return
	}

	id := httphelpers.GetFromRequest[uint](r, "id")

	if id == 0 {
		httphelpers.WriteText(w, http.StatusBadRequest, "invalid id")
		return
	}

	result, snapshot, refreshed := c.snapshotService.Delete(r.Context(), entity, id)
	c.recordActivity(result)
	setToastTrigger(w, result.Notification())

	if !refreshed {
		w.Header().Set("HX-Reswap", "none")
		httphelpers.WriteHtml(w, http.StatusOK, "")
		return
	}

	c.writeRows(w, snapshot)
}

/*
POST /entities/{entity}/{id}/delete
*/
func (c DashboardController) DeleteFormAction(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		entity models.Entity
	)

	if entity, err = c.lookupEntity(r); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "entity not found")
		return
	}

	id := httphelpers.GetFromRequest[uint](r, "id")

	if id == 0 {
		httphelpers.WriteText(w, http.StatusBadRequest, "invalid id")
		return
	}

	result, _, _ := c.snapshotService.Delete(r.Context(), entity, id)
	c.recordActivity(result)

	notification := result.Notification()

	if err = c.flashStore.Set(r, &notification); err != nil {
		slog.Error("error setting flash message", "error", err)
	}

	if err = c.flashStore.Save(w, r); err != nil {
		slog.Error("error saving session", "error", err)
	}

	http.Redirect(w, r, "/entities/"+entity.Name, http.StatusSeeOther)
}

func (c DashboardController) lookupEntity(r *http.Request) (models.Entity, error) {
	return models.LookupEntity(httphelpers.GetFromRequest[string](r, "entity"))
}

/*
entityTables skips snapshots that were never filled in, which happens
when the pool stops before every refresh has run.
*/
func (c DashboardController) entityTables(snapshots []services.Snapshot) ([]viewmodels.EntityTable, error) {
	var (
		renderErr error
	)

	result := []viewmodels.EntityTable{}

	for _, snapshot := range snapshots {
		if snapshot.Entity.Name == "" {
			continue
		}

		table, err := c.entityTable(snapshot)

		if err != nil {
			slog.Error("error rendering dashboard table", "error", err, "entity", snapshot.Entity.Name)
			renderErr = err
			continue
		}

		result = append(result, table)
	}

	return result, renderErr
}

func (c DashboardController) entityTable(snapshot services.Snapshot) (viewmodels.EntityTable, error) {
	html, err := c.tableRenderer.RenderTable(tables.FromSnapshot(snapshot))

	if err != nil {
		return viewmodels.EntityTable{}, err
	}

	return viewmodels.EntityTable{
		Entity: snapshot.Entity,
		Count:  len(snapshot.Rows),
		Failed: !snapshot.OK(),
		HTML:   html,
	}, nil
}

func (c DashboardController) writeRows(w http.ResponseWriter, snapshot services.Snapshot) {
	buf := bytes.Buffer{}

	if err := c.tableRenderer.RenderRows(&buf, tables.FromSnapshot(snapshot)); err != nil {
		slog.Error("error rendering rows", "error", err, "entity", snapshot.Entity.Name)
		httphelpers.TextInternalServerError(w, "error rendering rows")
		return
	}

	httphelpers.WriteHtml(w, http.StatusOK, buf.String())
}

func (c DashboardController) recordActivity(result services.RemoveResult) {
	if c.activityService == nil {
		return
	}

	if err := c.activityService.Record(result); err != nil {
		slog.Error("error recording activity", "error", err, "entity", result.Entity.Name, "id", result.ID)
	}
}

func setToastTrigger(w http.ResponseWriter, notification models.Notification) {
	b, err := json.Marshal(map[string]models.Notification{
		"showToast": notification,
	})

	if err != nil {
		slog.Error("error encoding toast", "error", err)
		return
	}

	w.Header().Set("HX-Trigger", string(b))
}
