package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mycontacts-api/internal/application"
	"github.com/oksasatya/mycontacts-api/internal/interface/middleware"
	"github.com/oksasatya/mycontacts-api/pkg/response"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type createContactRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"required,phone"`
}

type updateContactRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
}

func owner(c *gin.Context) (string, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthenticated", nil)
		return "", false
	}
	return id.Email, true
}

// List GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "contacts", gin.H{"count": len(list)})
}

// Get GET /api/contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}
	ct, err := h.Svc.Get(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ct, "contact", nil)
}

// Create POST /api/contacts {firstName, lastName, phone}
func (h *ContactHandler) Create(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ct, err := h.Svc.Create(c.Request.Context(), email, application.CreateContactInput{
		FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, ct, "contact created", nil)
}

// Update PATCH /api/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ct, err := h.Svc.Update(c.Request.Context(), email, c.Param("id"), application.UpdateContactInput{
		FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ct, "contact updated", nil)
}

// Delete DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}
	ct, err := h.Svc.Delete(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ct, "contact deleted", nil)
}

// Search GET /api/contacts/search?q=
func (h *ContactHandler) Search(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}
	list, err := h.Svc.Search(c.Request.Context(), email, c.Query("q"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "contacts", gin.H{"count": len(list)})
}

// UploadPhoto PUT /api/contacts/:id/photo (multipart field "photo")
func (h *ContactHandler) UploadPhoto(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}
	if !h.Svc.PhotosEnabled() {
		writeError(c, h.Logger, application.ErrStorageDisabled)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, application.MaxPhotoBytes+1<<20)
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"photo": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	// content type comes from the leading bytes, not the part header
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		writeError(c, h.Logger, err)
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)

	ct, err := h.Svc.UploadPhoto(c.Request.Context(), email, c.Param("id"), contentType, fh.Size,
		io.MultiReader(bytes.NewReader(head), f))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ct, "photo uploaded", nil)
}
