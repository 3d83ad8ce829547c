package service

import (
	"context"
	"fmt"
	"io"

	"coursemarket/internal/domain"
	"coursemarket/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory фейки хранилища и шлюза для юнит-тестов сервисов.

type fakeStore struct {
	users       map[string]*domain.User
	courses     map[uuid.UUID]*domain.Course
	purchases   map[uuid.UUID]*domain.Purchase
	enrollments map[string]map[uuid.UUID]bool // userID -> courseID
	ratings     map[uuid.UUID]map[string]int
	progress    map[string]map[uuid.UUID]map[uuid.UUID]bool // user -> course -> lectures

	failComplete bool // имитация сбоя хранилища при финализации
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[string]*domain.User{},
		courses:     map[uuid.UUID]*domain.Course{},
		purchases:   map[uuid.UUID]*domain.Purchase{},
		enrollments: map[string]map[uuid.UUID]bool{},
		ratings:     map[uuid.UUID]map[string]int{},
		progress:    map[string]map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

// --- UserStore ---

func (f *fakeStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeStore) GetWithEnrollments(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *user
	out.EnrolledCourses = nil
	for courseID := range f.enrollments[id] {
		if course, ok := f.courses[courseID]; ok {
			copied := *course
			out.EnrolledCourses = append(out.EnrolledCourses, &copied)
		}
	}
	return &out, nil
}

func (f *fakeStore) Upsert(ctx context.Context, user *domain.User) error {
	if existing, ok := f.users[user.ID]; ok {
		existing.Name = user.Name
		existing.Email = user.Email
		existing.ImageURL = user.ImageURL
		return nil
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, id, name, email, imageURL string) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Name = name
	user.Email = email
	user.ImageURL = imageURL
	return nil
}

func (f *fakeStore) UpdateRole(ctx context.Context, id, role string) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Role = role
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

// --- CourseStore ---

func (f *fakeStore) ListPublished(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range f.courses {
		if course.Published {
			copied := *course
			copied.Chapters = nil
			copied.EnrolledStudents = nil
			out = append(out, copied)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCourseByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *course
	return &copied, nil
}

// CourseStore.GetByID: имя совпадает с UserStore.GetByID, поэтому фейк
// курсового стора — отдельная обертка
type fakeCourseStore struct {
	*fakeStore
}

func (f fakeCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return f.GetCourseByID(ctx, id)
}

func (f *fakeStore) GetWithRoster(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *course
	copied.EnrolledStudents = nil
	for userID, enrolled := range f.enrollments {
		if enrolled[id] {
			if user, ok := f.users[userID]; ok {
				copied.EnrolledStudents = append(copied.EnrolledStudents, user)
			}
		}
	}
	return &copied, nil
}

func (f *fakeStore) ListByEducator(ctx context.Context, educatorID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range f.courses {
		if course.EducatorID == educatorID {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, course *domain.Course) error {
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateThumbnail(ctx context.Context, id uuid.UUID, url string) error {
	course, ok := f.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	course.Thumbnail = url
	return nil
}

func (f *fakeStore) SaveRating(ctx context.Context, courseID uuid.UUID, userID string, value int) error {
	if f.ratings[courseID] == nil {
		f.ratings[courseID] = map[string]int{}
	}
	f.ratings[courseID][userID] = value
	return nil
}

// --- PurchaseStore ---

func (f *fakeStore) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	copied := *purchase
	f.purchases[purchase.ID] = &copied
	return nil
}

type fakePurchaseStore struct {
	*fakeStore
}

func (f fakePurchaseStore) Create(ctx context.Context, purchase *domain.Purchase) error {
	return f.CreatePurchase(ctx, purchase)
}

func (f *fakeStore) Complete(ctx context.Context, id uuid.UUID) error {
	if f.failComplete {
		return fmt.Errorf("store unavailable")
	}
	purchase, ok := f.purchases[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if purchase.Terminal() {
		return nil
	}
	if _, ok := f.users[purchase.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if _, ok := f.courses[purchase.CourseID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if f.enrollments[purchase.UserID] == nil {
		f.enrollments[purchase.UserID] = map[uuid.UUID]bool{}
	}
	f.enrollments[purchase.UserID][purchase.CourseID] = true
	purchase.Status = domain.PurchaseCompleted
	return nil
}

func (f *fakeStore) Fail(ctx context.Context, id uuid.UUID) error {
	purchase, ok := f.purchases[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if purchase.Terminal() {
		return nil
	}
	purchase.Status = domain.PurchaseFailed
	return nil
}

func (f *fakeStore) ListCompletedByCourses(ctx context.Context, courseIDs []uuid.UUID) ([]domain.Purchase, error) {
	var out []domain.Purchase
	for _, purchase := range f.purchases {
		if purchase.Status != domain.PurchaseCompleted {
			continue
		}
		for _, id := range courseIDs {
			if purchase.CourseID == id {
				copied := *purchase
				copied.User = f.users[purchase.UserID]
				copied.Course = f.courses[purchase.CourseID]
				out = append(out, copied)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) TotalEarnings(ctx context.Context, courseIDs []uuid.UUID) (decimal.Decimal, error) {
	purchases, err := f.ListCompletedByCourses(ctx, courseIDs)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range purchases {
		total = total.Add(p.Amount)
	}
	return total, nil
}

// --- ProgressStore ---

func (f *fakeStore) MarkCompleted(ctx context.Context, userID string, courseID, lectureID uuid.UUID) error {
	if f.progress[userID] == nil {
		f.progress[userID] = map[uuid.UUID]map[uuid.UUID]bool{}
	}
	if f.progress[userID][courseID] == nil {
		f.progress[userID][courseID] = map[uuid.UUID]bool{}
	}
	f.progress[userID][courseID][lectureID] = true
	return nil
}

func (f *fakeStore) Get(ctx context.Context, userID string, courseID uuid.UUID) (*domain.CourseProgress, error) {
	lectures, ok := f.progress[userID][courseID]
	if !ok {
		return nil, nil
	}
	progress := &domain.CourseProgress{UserID: userID, CourseID: courseID}
	for lectureID := range lectures {
		progress.Completed = append(progress.Completed, domain.CompletedLecture{
			UserID:    userID,
			CourseID:  courseID,
			LectureID: lectureID,
		})
	}
	return progress, nil
}

// --- PaymentGateway ---

type fakeGateway struct {
	sessions      map[string]map[string]string // paymentIntentID -> metadata
	lastCheckout  payment.CheckoutParams
	checkoutCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]map[string]string{}}
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, p payment.CheckoutParams) (string, error) {
	g.lastCheckout = p
	g.checkoutCalls++
	return "https://checkout.example.com/" + p.PurchaseID, nil
}

func (g *fakeGateway) SessionMetadata(ctx context.Context, paymentIntentID string) (map[string]string, error) {
	metadata, ok := g.sessions[paymentIntentID]
	if !ok {
		return nil, fmt.Errorf("no checkout session for payment intent %s", paymentIntentID)
	}
	return metadata, nil
}

// привязывает payment intent к покупке, как это делает Stripe через
// metadata checkout-сессии
func (g *fakeGateway) register(paymentIntentID, purchaseID string) {
	g.sessions[paymentIntentID] = map[string]string{"purchaseId": purchaseID}
}

// --- Uploader ---

type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	u.uploads++
	return "https://media.example.com/thumb.png", nil
}
