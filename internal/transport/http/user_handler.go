package handlers

import (
	"errors"
	"fmt"

	"coursemarket/internal/domain"
	"coursemarket/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserHandler struct {
	users     service.UserStore
	catalog   *service.CatalogService
	purchases *service.PurchaseService
	progress  *service.ProgressService
	ratings   *service.RatingService
}

func NewUserHandler(users service.UserStore, catalog *service.CatalogService, purchases *service.PurchaseService, progress *service.ProgressService, ratings *service.RatingService) *UserHandler {
	return &UserHandler{
		users:     users,
		catalog:   catalog,
		purchases: purchases,
		progress:  progress,
		ratings:   ratings,
	}
}

// GET /api/user/data
func (h *UserHandler) GetData(c *gin.Context) {
	userID := c.GetString("userId")

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, fmt.Errorf("%w: user not found", domain.ErrNotFound))
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user})
}

// GET /api/user/enrolled-courses
func (h *UserHandler) EnrolledCourses(c *gin.Context) {
	userID := c.GetString("userId")

	courses, err := h.catalog.ListEnrolled(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"enrolledCourses": courses})
}

// POST /api/user/purchase {courseId}
func (h *UserHandler) Purchase(c *gin.Context) {
	userID := c.GetString("userId")

	var req struct {
		CourseID string `json:"courseId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: bad courseId", domain.ErrInvalidInput))
		return
	}

	origin := c.GetHeader("Origin")
	sessionURL, err := h.purchases.Initiate(c.Request.Context(), userID, courseID, origin)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"session_url": sessionURL})
}

// POST /api/user/update-course-progress {courseId, lectureId}
func (h *UserHandler) UpdateCourseProgress(c *gin.Context) {
	userID := c.GetString("userId")

	var req struct {
		CourseID  string `json:"courseId" binding:"required"`
		LectureID string `json:"lectureId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: bad courseId", domain.ErrInvalidInput))
		return
	}
	lectureID, err := uuid.Parse(req.LectureID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: bad lectureId", domain.ErrInvalidInput))
		return
	}

	if err := h.progress.MarkLectureComplete(c.Request.Context(), userID, courseID, lectureID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Progress Updated"})
}

// POST /api/user/get-course-progress {courseId}
func (h *UserHandler) GetCourseProgress(c *gin.Context) {
	userID := c.GetString("userId")

	var req struct {
		CourseID string `json:"courseId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: bad courseId", domain.ErrInvalidInput))
		return
	}

	progress, err := h.progress.GetProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"progressData": progress})
}

// POST /api/user/add-rating {courseId, rating}
func (h *UserHandler) AddRating(c *gin.Context) {
	userID := c.GetString("userId")

	var req struct {
		CourseID string `json:"courseId" binding:"required"`
		Rating   int    `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: bad courseId", domain.ErrInvalidInput))
		return
	}

	if err := h.ratings.Rate(c.Request.Context(), userID, courseID, req.Rating); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Rating added"})
}
