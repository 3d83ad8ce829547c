package handlers

import (
	"fmt"

	"coursemarket/internal/domain"
	"coursemarket/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	catalog *service.CatalogService
}

func NewCourseHandler(catalog *service.CatalogService) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// GET /api/course/all
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.catalog.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"courses": courses})
}

// GET /api/course/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: bad course id", domain.ErrInvalidInput))
		return
	}

	course, err := h.catalog.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"courseData": course})
}
