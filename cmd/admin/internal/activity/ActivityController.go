package activity

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/pages"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/viewmodels"
	"github.com/adampresley/workshopadmin/pkg/models"
	"github.com/adampresley/workshopadmin/pkg/services"
)

type ActivityHandlers interface {
	ActivityPage(w http.ResponseWriter, r *http.Request)
}

type ActivityControllerConfig struct {
	ActivityService services.ActivityServicer
	Limit           int
	Renderer        pages.PageRenderer
}

type ActivityController struct {
	activityService services.ActivityServicer
	limit           int
	renderer        pages.PageRenderer
}

func NewActivityController(config ActivityControllerConfig) ActivityController {
	return ActivityController{
		activityService: config.ActivityService,
		limit:           config.Limit,
		renderer:        config.Renderer,
	}
}

/*
GET /activity
*/
func (c ActivityController) ActivityPage(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	pageName := "pages/activity"

	viewData := viewmodels.ActivityList{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Activities: []models.Activity{},
	}

	if viewData.Activities, err = c.activityService.GetRecent(c.limit); err != nil {
		slog.Error("error getting recent activity", "error", err)
		viewData.IsError = true
		viewData.Message = "There was a problem getting the activity log."
	}

	c.renderer.Render(w, pageName, viewData)
}
