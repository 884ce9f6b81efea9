package viewmodels

import "github.com/adampresley/workshopadmin/pkg/models"

type ActivityList struct {
	BaseViewModel
	Activities []models.Activity
}
