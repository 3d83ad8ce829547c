package handlers

import (
	"fmt"

	"coursemarket/internal/domain"
	"coursemarket/internal/service"

	"github.com/gin-gonic/gin"
)

type EducatorHandler struct {
	educator *service.EducatorService
}

func NewEducatorHandler(educator *service.EducatorService) *EducatorHandler {
	return &EducatorHandler{educator: educator}
}

// GET /api/educator/update-role
func (h *EducatorHandler) UpdateRole(c *gin.Context) {
	userID := c.GetString("userId")

	if err := h.educator.ElevateToEducator(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "You can publish a course now"})
}

// POST /api/educator/add-course (multipart: courseData + image)
func (h *EducatorHandler) AddCourse(c *gin.Context) {
	userID := c.GetString("userId")

	courseData := c.PostForm("courseData")
	if courseData == "" {
		respondError(c, fmt.Errorf("%w: courseData is required", domain.ErrInvalidInput))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, fmt.Errorf("%w: thumbnail not attached", domain.ErrInvalidInput))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	_, err = h.educator.AddCourse(c.Request.Context(), userID, []byte(courseData), file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Course Added"})
}

// GET /api/educator/courses
func (h *EducatorHandler) Courses(c *gin.Context) {
	userID := c.GetString("userId")

	courses, err := h.educator.Courses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"courses": courses})
}

// GET /api/educator/dashboard
func (h *EducatorHandler) Dashboard(c *gin.Context) {
	userID := c.GetString("userId")

	data, err := h.educator.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"dashboardData": data})
}

// GET /api/educator/enrolled-students
func (h *EducatorHandler) EnrolledStudents(c *gin.Context) {
	userID := c.GetString("userId")

	students, err := h.educator.EnrolledStudents(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"enrolledStudents": students})
}
