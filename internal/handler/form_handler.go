package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/application"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/viewmodel"
)

// FormHandler handles HTTP requests for registration form sessions.
type FormHandler struct {
	sessions *SessionRegistry
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(sessions *SessionRegistry) *FormHandler {
	return &FormHandler{sessions: sessions}
}

// SessionResponse is the session id with its rendered form.
type SessionResponse struct {
	ID   string          `json:"id"`
	View viewmodel.State `json:"view"`
}

// SubmitResponse is a successful submit with the form rendered after it.
type SubmitResponse struct {
	Result *application.SubmitResult `json:"result"`
	View   viewmodel.State           `json:"view"`
}

type editTargetRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// RegisterRoutes registers all form session routes.
func (h *FormHandler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/api/v1/form-sessions")
	{
		sessions.POST("", h.OpenSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.CloseSession)
		sessions.POST("/:id/image", h.SelectImage)
		sessions.DELETE("/:id/image", h.RemoveImage)
		sessions.PUT("/:id/edit-target", h.BeginEdit)
		sessions.DELETE("/:id/edit-target", h.CancelEdit)
		sessions.POST("/:id/submit", h.Submit)
		sessions.POST("/:id/recent/refresh", h.RefreshRecent)
	}
}

// OpenSession starts a new form in create mode.
func (h *FormHandler) OpenSession(c *gin.Context) {
	s := h.sessions.Open(c.Request.Context())
	success(c, http.StatusCreated, sessionResponse(s))
}

// GetSession returns the rendered form.
func (h *FormHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, sessionResponse(s))
}

// CloseSession discards a form.
func (h *FormHandler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		failure(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectImage takes the multipart "file" field as the form's image.
func (h *FormHandler) SelectImage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "multipart field \"file\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer f.Close()

	err = s.Form.SelectImage(mascota.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	})
	if err != nil {
		failure(c, err, s.View.Snapshot())
		return
	}
	success(c, http.StatusOK, sessionResponse(s))
}

// RemoveImage drops the selected image.
func (h *FormHandler) RemoveImage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Form.RemoveImage()
	success(c, http.StatusOK, sessionResponse(s))
}

// BeginEdit switches the form to update an existing record.
func (h *FormHandler) BeginEdit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req editTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.Form.BeginEdit(req.ID); err != nil {
		failure(c, err, s.View.Snapshot())
		return
	}
	success(c, http.StatusOK, sessionResponse(s))
}

// CancelEdit resets the form back to create mode.
func (h *FormHandler) CancelEdit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Form.Cancel(); err != nil {
		failure(c, err, s.View.Snapshot())
		return
	}
	success(c, http.StatusOK, sessionResponse(s))
}

// Submit runs the upload-then-save workflow with the posted field values.
func (h *FormHandler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var values mascota.FormValues
	if err := c.ShouldBindJSON(&values); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := s.Form.Submit(c.Request.Context(), values)
	if err != nil {
		failure(c, err, s.View.Snapshot())
		return
	}
	success(c, http.StatusOK, SubmitResponse{Result: result, View: s.View.Snapshot()})
}

// RefreshRecent reloads the recent records panel.
func (h *FormHandler) RefreshRecent(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Recent.Refresh(c.Request.Context()); err != nil {
		failure(c, err, s.View.Snapshot())
		return
	}
	success(c, http.StatusOK, sessionResponse(s))
}

func (h *FormHandler) session(c *gin.Context) (*Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		failure(c, err, nil)
		return nil, false
	}
	return s, true
}

func sessionResponse(s *Session) SessionResponse {
	return SessionResponse{ID: s.ID, View: s.View.Snapshot()}
}
