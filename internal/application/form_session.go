package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
)

// Texts rendered by the registration form.
const (
	TitleCreate = "Registrar Nueva Mascota"
	TitleEdit   = "Editar Mascota"

	LabelCreate     = "Registrar en el Refugio"
	LabelUpdate     = "Actualizar Mascota"
	LabelSubmitting = "Registrando..."

	MsgCreated = "¡Mascota registrada exitosamente! Pronto aparecerá disponible para adopción."
	MsgUpdated = "¡Información de la mascota actualizada!"
)

// SubmitMode tells whether a submit created or updated a record.
type SubmitMode string

const (
	ModeCreate SubmitMode = "create"
	ModeUpdate SubmitMode = "update"
)

// SubmitResult describes a successful submit.
type SubmitResult struct {
	Mode      SubmitMode `json:"mode"`
	MascotaID int64      `json:"mascota_id,omitempty"`
	ImageURL  string     `json:"imagen_url,omitempty"`
	Message   string     `json:"message"`
}

// FormSession owns the transient state of one registration form: the selected
// image and the edit target. It runs the upload-then-save workflow and keeps
// the view in step with it. Only one submit runs at a time.
type FormSession struct {
	gateway   mascota.Gateway
	view      FormView
	recent    Refresher
	publisher EventPublisher
	logger    *zap.Logger

	mu         sync.Mutex
	editTarget *int64
	image      *mascota.Image
	imageSeq   uint64
	appliedSeq uint64
	submitting bool
}

// NewFormSession creates a FormSession and renders the empty create form.
// recent and publisher may be nil.
func NewFormSession(
	gateway mascota.Gateway,
	view FormView,
	recent Refresher,
	publisher EventPublisher,
	logger *zap.Logger,
) *FormSession {
	s := &FormSession{
		gateway:   gateway,
		view:      view,
		recent:    recent,
		publisher: publisher,
		logger:    logger,
	}
	s.mu.Lock()
	s.resetLocked()
	s.view.Submit.SetEnabled(true)
	s.mu.Unlock()
	return s
}

// SelectImage validates and stores an image picked or dropped by the user.
// On rejection the previously selected image stays in place. When several
// selections overlap only the most recently started one is kept.
func (s *FormSession) SelectImage(f mascota.ImageFile) error {
	s.mu.Lock()
	s.imageSeq++
	seq := s.imageSeq
	s.mu.Unlock()

	img, err := mascota.ReadImage(f)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.appliedSeq {
		s.logger.Debug("discarding stale image selection", zap.String("image", f.Name))
		return nil
	}
	if err != nil {
		s.view.Notifier.Notify(NotifyError, mascota.UserMessage(err))
		return err
	}

	s.image = img
	s.appliedSeq = seq
	s.view.Image.ShowPreview(img.DataURL())
	return nil
}

// RemoveImage drops the selected image and returns to the upload prompt.
func (s *FormSession) RemoveImage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = nil
	s.appliedSeq = s.imageSeq + 1
	s.imageSeq = s.appliedSeq
	s.view.Image.ShowUploadPrompt()
	s.view.Image.ClearInput()
}

// BeginEdit switches the form to update the record with the given id.
func (s *FormSession) BeginEdit(id int64) error {
	if id <= 0 {
		return mascota.NewValidationError("id", "Identificador de mascota inválido")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return mascota.ErrSubmitInProgress
	}
	s.editTarget = &id
	s.view.Header.SetTitle(TitleEdit)
	s.view.Header.SetCancelVisible(true)
	s.view.Submit.SetLabel(LabelUpdate)
	return nil
}

// Reset discards all transient state and returns to create mode.
func (s *FormSession) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return mascota.ErrSubmitInProgress
	}
	s.resetLocked()
	return nil
}

// Cancel leaves edit mode. It is Reset under the name the cancel control uses.
func (s *FormSession) Cancel() error {
	return s.Reset()
}

// Submit runs the workflow: upload the selected image if any, then create or
// update the record. Any failure aborts the remaining steps, and the submit
// control is restored whichever step failed.
func (s *FormSession) Submit(ctx context.Context, values mascota.FormValues) (*SubmitResult, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, mascota.ErrSubmitInProgress
	}
	s.submitting = true
	img := s.image
	var target *int64
	if s.editTarget != nil {
		id := *s.editTarget
		target = &id
	}
	s.view.Submit.SetEnabled(false)
	s.view.Submit.SetLabel(LabelSubmitting)
	s.mu.Unlock()

	defer s.finishSubmit()

	draft, err := mascota.NewDraft(values)
	if err != nil {
		return nil, s.fail(err)
	}

	result := &SubmitResult{Mode: ModeCreate, Message: MsgCreated}
	if target != nil {
		result.Mode = ModeUpdate
		result.Message = MsgUpdated
	}

	if img != nil {
		s.logger.Info("uploading image",
			zap.String("image", img.Name()),
			zap.Int64("bytes", img.Size()),
		)
		url, err := s.gateway.UploadImage(ctx, img)
		if err != nil {
			return nil, s.fail(err)
		}
		draft = draft.WithImageURL(url)
		result.ImageURL = url
	}

	var saved *mascota.SaveResult
	if target != nil {
		saved, err = s.gateway.Update(ctx, *target, draft)
	} else {
		saved, err = s.gateway.Create(ctx, draft)
	}
	if err != nil {
		if result.ImageURL != "" {
			s.logger.Warn("record rejected after image upload, image left orphaned",
				zap.String("imagen_url", result.ImageURL),
			)
		}
		return nil, s.fail(err)
	}
	result.MascotaID = saved.ID

	s.logger.Info("mascota saved",
		zap.String("mode", string(result.Mode)),
		zap.Int64("mascota_id", result.MascotaID),
	)

	s.view.Notifier.Notify(NotifySuccess, result.Message)
	s.publish(ctx, result, draft)

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	if s.recent != nil {
		_ = s.recent.Refresh(ctx)
	}
	return result, nil
}

// EditTarget returns the id being edited, or nil in create mode.
func (s *FormSession) EditTarget() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editTarget == nil {
		return nil
	}
	id := *s.editTarget
	return &id
}

// HasImage reports whether an image is waiting to be uploaded.
func (s *FormSession) HasImage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image != nil
}

// Submitting reports whether a submit is in flight.
func (s *FormSession) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *FormSession) finishSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitting = false
	s.view.Submit.SetEnabled(true)
	if s.editTarget != nil {
		s.view.Submit.SetLabel(LabelUpdate)
	} else {
		s.view.Submit.SetLabel(LabelCreate)
	}
}

func (s *FormSession) fail(err error) error {
	s.logger.Warn("submit failed", zap.Error(err))
	s.view.Notifier.Notify(NotifyError, mascota.UserMessage(err))
	return err
}

func (s *FormSession) publish(ctx context.Context, result *SubmitResult, draft mascota.Draft) {
	if s.publisher == nil {
		return
	}
	evtType := mascota.EventRegistered
	if result.Mode == ModeUpdate {
		evtType = mascota.EventUpdated
	}
	evt := mascota.IntakeEvent{
		Type:       evtType,
		MascotaID:  result.MascotaID,
		Name:       draft.Name,
		Species:    draft.Species,
		ImageURL:   result.ImageURL,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishIntake(ctx, evt); err != nil {
		s.logger.Error("failed to publish intake event",
			zap.String("event_type", evtType),
			zap.Error(err),
		)
	}
}

// resetLocked must be called with s.mu held.
func (s *FormSession) resetLocked() {
	s.editTarget = nil
	s.image = nil
	s.appliedSeq = s.imageSeq + 1
	s.imageSeq = s.appliedSeq
	s.view.Header.ClearFields()
	s.view.Image.ShowUploadPrompt()
	s.view.Image.ClearInput()
	s.view.Header.SetTitle(TitleCreate)
	s.view.Header.SetCancelVisible(false)
	s.view.Submit.SetLabel(LabelCreate)
}
