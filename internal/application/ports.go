package application

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
)

// NotificationKind selects the style of a transient user notification.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// SubmitControl is the form's submit button.
type SubmitControl interface {
	SetEnabled(enabled bool)
	SetLabel(label string)
}

// ImageArea is the upload prompt / preview pair and its file input.
type ImageArea interface {
	ShowPreview(src string)
	ShowUploadPrompt()
	ClearInput()
}

// FormHeader covers the form title, the cancel control and the field inputs.
type FormHeader interface {
	SetTitle(title string)
	SetCancelVisible(visible bool)
	ClearFields()
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(kind NotificationKind, message string)
}

// FormView bundles the handles a FormSession drives.
type FormView struct {
	Submit   SubmitControl
	Image    ImageArea
	Header   FormHeader
	Notifier Notifier
}

// RecentPanel renders the recent records list.
type RecentPanel interface {
	ShowRecent(items []PetSummary)
	ShowEmpty(message string)
	ShowError(message string)
}

// Refresher reloads a view from the API.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// EventPublisher announces saved records to other services.
type EventPublisher interface {
	PublishIntake(ctx context.Context, evt mascota.IntakeEvent) error
}
