package models

const (
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

/*
Notification is a short, non-blocking message shown to the user as a
toast after an action completes.
*/
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (n Notification) IsError() bool {
	return n.Level == NotificationError
}

func (n Notification) IsWarning() bool {
	return n.Level == NotificationWarning
}
