package viewmodels

type EntityPage struct {
	BaseViewModel
	Table EntityTable
}
