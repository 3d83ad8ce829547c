package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Статусы покупки
const (
	PurchasePending   = "pending"
	PurchaseCompleted = "completed"
	PurchaseFailed    = "failed"
)

// ID выдает Clerk, локально не генерируем
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Email    string `gorm:"index" json:"email"`
	ImageURL string `json:"imageUrl"`
	Role     string `gorm:"default:'student'" json:"role"` // "student", "educator"

	EnrolledCourses []*Course `gorm:"many2many:user_enrollments;" json:"enrolledCourses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Course struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string          `gorm:"index" json:"courseTitle"`
	Description string          `json:"courseDescription"`
	Thumbnail   string          `json:"courseThumbnail"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"coursePrice"`
	Discount    float64         `json:"discount"` // процент 0-100
	Published   bool            `gorm:"default:true;index" json:"isPublished"`

	EducatorID string `json:"educatorId"`
	Educator   *User  `gorm:"foreignKey:EducatorID" json:"educator,omitempty"`

	Chapters         []Chapter `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"courseContent,omitempty"`
	EnrolledStudents []*User   `gorm:"many2many:user_enrollments;" json:"enrolledStudents,omitempty"`
	Ratings          []Rating  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"courseRatings,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiscountedPrice считает цену со скидкой, округленную до копеек.
// Меньше нуля быть не может.
func (c *Course) DiscountedPrice() decimal.Decimal {
	factor := decimal.NewFromFloat(1 - c.Discount/100)
	price := c.Price.Mul(factor).Round(2)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

type Chapter struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;index" json:"courseId"`
	Title    string    `json:"chapterTitle"`
	Order    int       `gorm:"column:position" json:"chapterOrder"` // для сортировки (1, 2, 3...)

	Lectures []Lecture `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;" json:"chapterContent"`
}

type Lecture struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChapterID     uuid.UUID `gorm:"type:uuid;index" json:"chapterId"`
	Title         string    `json:"lectureTitle"`
	Order         int       `gorm:"column:position" json:"lectureOrder"`
	Duration      int       `json:"lectureDuration"` // минуты
	LectureURL    string    `json:"lectureUrl"`
	IsPreviewFree bool      `json:"isPreviewFree"`
}

// Purchase.ID уходит в метаданные Stripe-сессии как корреляционный токен
type Purchase struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID       `gorm:"type:uuid;index" json:"courseId"`
	UserID   string          `gorm:"index" json:"userId"`
	Amount   decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	Status   string          `gorm:"default:'pending';index" json:"status"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Terminal сообщает, завершена ли покупка окончательно.
func (p *Purchase) Terminal() bool {
	return p.Status == PurchaseCompleted || p.Status == PurchaseFailed
}

type CourseProgress struct {
	UserID   string    `gorm:"primaryKey" json:"userId"`
	CourseID uuid.UUID `gorm:"type:uuid;primaryKey" json:"courseId"`

	Completed []CompletedLecture `gorm:"foreignKey:UserID,CourseID;references:UserID,CourseID" json:"lectureCompleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CompletedLecture struct {
	UserID    string    `gorm:"primaryKey" json:"-"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"-"`
	LectureID uuid.UUID `gorm:"type:uuid;primaryKey" json:"lectureId"`
	CreatedAt time.Time `json:"completedAt"`
}

// Не больше одной оценки на пользователя
type Rating struct {
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"courseId"`
	UserID    string    `gorm:"primaryKey" json:"userId"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
