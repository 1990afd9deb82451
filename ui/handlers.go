package ui

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quantix/domain/core"
	"quantix/domain/dataset"
	"quantix/domain/selection"
	"quantix/internal/errors"
)

// fieldView is the catalog entry shape served to clients
type fieldView struct {
	dataset.FieldMeta
	Roles []selection.Role `json:"roles"`
}

// setSlotRequest is the body of PUT .../slots/:index. Field may be a key
// or a column header; "" clears the slot.
type setSlotRequest struct {
	Field *string `json:"field" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleFields(c *gin.Context) {
	metas := dataset.Fields()
	fields := make([]fieldView, 0, len(metas))
	for _, meta := range metas {
		view := fieldView{FieldMeta: meta}
		for _, role := range []selection.Role{selection.RoleX, selection.RoleY, selection.RoleFields} {
			if role.Accepts(meta.Key) {
				view.Roles = append(view.Roles, role)
			}
		}
		fields = append(fields, view)
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

func (s *Server) handleDatasetInfo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.session.DatasetInfo())
}

// handleDatasetReload collapses concurrent reload requests into one load
func (s *Server) handleDatasetReload(c *gin.Context) {
	result, err, shared := s.reloads.Do("reload", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), s.reloadTimeout)
		defer cancel()

		s.mu.Lock()
		defer s.mu.Unlock()
		return s.session.Reload(ctx)
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataset": result.(dataset.Info), "shared": shared})
}

func (s *Server) handleSections(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"dataset": s.session.DatasetInfo(),
		"bundle":  s.session.Bundle(),
	})
}

func (s *Server) handleSection(c *gin.Context) {
	kind, err := selection.ParseSectionKind(c.Param("section"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondSection(c, http.StatusOK, kind, nil)
}

func (s *Server) handleAddSlot(c *gin.Context) {
	kind, role, ok := s.parseTarget(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.AddSlot(kind, role); err != nil {
		s.respondError(c, err)
		return
	}
	s.respondSection(c, http.StatusCreated, kind, nil)
}

func (s *Server) handleSetSlot(c *gin.Context) {
	kind, role, ok := s.parseTarget(c)
	if !ok {
		return
	}
	index, ok := s.parseIndex(c)
	if !ok {
		return
	}
	var req setSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"field\": \"<key or header>\"}"})
		return
	}
	key, err := dataset.ParseFieldKey(*req.Field)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.SetSlot(kind, role, index, key); err != nil {
		s.respondError(c, err)
		return
	}
	s.respondSection(c, http.StatusOK, kind, nil)
}

func (s *Server) handleRemoveSlot(c *gin.Context) {
	kind, role, ok := s.parseTarget(c)
	if !ok {
		return
	}
	index, ok := s.parseIndex(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.session.RemoveSlot(kind, role, index)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondSection(c, http.StatusOK, kind, gin.H{"removed": removed})
}

// respondSection writes the section's selection and derived view. Callers
// hold mu.
func (s *Server) respondSection(c *gin.Context, status int, kind selection.SectionKind, extra gin.H) {
	bundle := s.session.Bundle()
	view, ok := bundle.Section(kind)
	if !ok {
		s.respondError(c, errors.InternalError("no derived view for section "+string(kind)))
		return
	}
	body := gin.H{
		"section":     kind,
		"dataset_id":  bundle.DatasetID,
		"fingerprint": bundle.Fingerprint,
		"computed_at": bundle.ComputedAt,
		"view":        view,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func (s *Server) parseTarget(c *gin.Context) (selection.SectionKind, selection.Role, bool) {
	kind, err := selection.ParseSectionKind(c.Param("section"))
	if err != nil {
		s.respondError(c, err)
		return "", "", false
	}
	role, err := selection.ParseRole(c.Param("role"))
	if err != nil {
		s.respondError(c, err)
		return "", "", false
	}
	return kind, role, true
}

func (s *Server) parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot index must be an integer"})
		return 0, false
	}
	return index, true
}

// respondError maps domain and infrastructure errors to HTTP statuses
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsSelectionError(err):
		status = http.StatusUnprocessableEntity
	case stderrors.Is(err, core.ErrUnknownSection), stderrors.Is(err, core.ErrUnknownRole):
		status = http.StatusNotFound
	case stderrors.Is(err, core.ErrNotFound), errors.HasCode(err, errors.CodeNotFound):
		status = http.StatusNotFound
	case errors.HasCode(err, errors.CodeInvalidInput):
		status = http.StatusUnprocessableEntity
	case stderrors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
