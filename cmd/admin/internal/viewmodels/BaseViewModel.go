package viewmodels

import (
	"net/http"

	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/flash"
	"github.com/adampresley/workshopadmin/pkg/models"
)

type BaseViewModel struct {
	Message            string
	IsError            bool
	IsWarning          bool
	IsHtmx             bool
	JavascriptIncludes []rendering.JavascriptInclude
}

/*
ApplyFlash copies a flash notification left by a previous request into
the view model's message fields.
*/
func (vm *BaseViewModel) ApplyFlash(r *http.Request) {
	flash := GetFlashFromContext(r)

	if flash == nil {
		return
	}

	vm.Message = flash.Message
	vm.IsError = flash.IsError()
	vm.IsWarning = flash.IsWarning()
}

func GetFlashFromContext(r *http.Request) *models.Notification {
	return flash.FromContext(r.Context())
}
