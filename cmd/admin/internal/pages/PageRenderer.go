package pages

import (
	"net/http"

	"github.com/adampresley/adamgokit/rendering"
)

/*
PageRenderer draws a full page from the embedded templates.
*/
type PageRenderer interface {
	Render(w http.ResponseWriter, pageName string, data any)
}

type TemplatePageRenderer struct {
	renderer rendering.TemplateRenderer
}

func NewTemplatePageRenderer(renderer rendering.TemplateRenderer) TemplatePageRenderer {
	return TemplatePageRenderer{
		renderer: renderer,
	}
}

func (p TemplatePageRenderer) Render(w http.ResponseWriter, pageName string, data any) {
	p.renderer.Render(pageName, data, w)
}
