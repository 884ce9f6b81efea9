package viewmodels

import (
	"html/template"

	"github.com/adampresley/workshopadmin/pkg/models"
)

type Dashboard struct {
	BaseViewModel
	Tables []EntityTable
}

type EntityTable struct {
	Entity models.Entity
	Count  int
	Failed bool
	HTML   template.HTML
}
