package service

import (
	"context"
	"errors"
	"testing"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newRatingFixture() (*fakeStore, *RatingService, string, uuid.UUID) {
	store := newFakeStore()
	userID := "user_1"
	courseID := uuid.New()
	store.users[userID] = &domain.User{ID: userID}
	store.courses[courseID] = &domain.Course{ID: courseID, Price: decimal.NewFromInt(10), Published: true}
	return store, NewRatingService(store, fakeCourseStore{store}), userID, courseID
}

func TestRate_OutOfRange(t *testing.T) {
	_, svc, userID, courseID := newRatingFixture()

	for _, value := range []int{0, 6, -1} {
		if err := svc.Rate(context.Background(), userID, courseID, value); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Rate(%d) = %v, want ErrInvalidInput", value, err)
		}
	}
}

func TestRate_RequiresEnrollment(t *testing.T) {
	store, svc, userID, courseID := newRatingFixture()

	err := svc.Rate(context.Background(), userID, courseID, 5)
	if !errors.Is(err, domain.ErrNotEnrolled) {
		t.Fatalf("err = %v, want ErrNotEnrolled", err)
	}
	if len(store.ratings[courseID]) != 0 {
		t.Error("rating must not be stored without enrollment")
	}
}

func TestRate_UpsertsSingleRating(t *testing.T) {
	store, svc, userID, courseID := newRatingFixture()
	store.enrollments[userID] = map[uuid.UUID]bool{courseID: true}

	if err := svc.Rate(context.Background(), userID, courseID, 3); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	// Повторная оценка заменяет, а не добавляет
	if err := svc.Rate(context.Background(), userID, courseID, 5); err != nil {
		t.Fatalf("second rating: %v", err)
	}

	if len(store.ratings[courseID]) != 1 {
		t.Fatalf("ratings = %d, want 1 per user", len(store.ratings[courseID]))
	}
	if store.ratings[courseID][userID] != 5 {
		t.Errorf("rating = %d, want 5", store.ratings[courseID][userID])
	}
}

func TestRate_UnknownCourseOrUser(t *testing.T) {
	_, svc, userID, _ := newRatingFixture()

	if err := svc.Rate(context.Background(), userID, uuid.New(), 4); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing course: err = %v, want ErrInvalidInput", err)
	}
}
