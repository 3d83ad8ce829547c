package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EducatorService struct {
	users     UserStore
	courses   CourseStore
	purchases PurchaseStore
	uploader  Uploader
}

func NewEducatorService(users UserStore, courses CourseStore, purchases PurchaseStore, uploader Uploader) *EducatorService {
	return &EducatorService{
		users:     users,
		courses:   courses,
		purchases: purchases,
		uploader:  uploader,
	}
}

func (s *EducatorService) ElevateToEducator(ctx context.Context, userID string) error {
	return s.users.UpdateRole(ctx, userID, "educator")
}

// CourseInput — JSON из multipart-поля courseData
type CourseInput struct {
	Title       string  `json:"courseTitle"`
	Description string  `json:"courseDescription"`
	Price       float64 `json:"coursePrice"`
	Discount    float64 `json:"discount"`
	Chapters    []struct {
		Title    string `json:"chapterTitle"`
		Order    int    `json:"chapterOrder"`
		Lectures []struct {
			Title         string `json:"lectureTitle"`
			Order         int    `json:"lectureOrder"`
			Duration      int    `json:"lectureDuration"`
			LectureURL    string `json:"lectureUrl"`
			IsPreviewFree bool   `json:"isPreviewFree"`
		} `json:"chapterContent"`
	} `json:"courseContent"`
}

// AddCourse создает курс преподавателя и грузит обложку на медиахост
func (s *EducatorService) AddCourse(ctx context.Context, educatorID string, rawCourse []byte, thumbnail io.Reader) (*domain.Course, error) {
	var input CourseInput
	if err := json.Unmarshal(rawCourse, &input); err != nil {
		return nil, fmt.Errorf("%w: bad courseData: %v", domain.ErrInvalidInput, err)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: course title is required", domain.ErrInvalidInput)
	}
	if input.Discount < 0 || input.Discount > 100 {
		return nil, fmt.Errorf("%w: discount must be 0-100", domain.ErrInvalidInput)
	}

	course := &domain.Course{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Price:       decimal.NewFromFloat(input.Price),
		Discount:    input.Discount,
		Published:   true,
		EducatorID:  educatorID,
	}
	for _, ch := range input.Chapters {
		chapter := domain.Chapter{
			ID:       uuid.New(),
			CourseID: course.ID,
			Title:    ch.Title,
			Order:    ch.Order,
		}
		for _, lec := range ch.Lectures {
			chapter.Lectures = append(chapter.Lectures, domain.Lecture{
				ID:            uuid.New(),
				ChapterID:     chapter.ID,
				Title:         lec.Title,
				Order:         lec.Order,
				Duration:      lec.Duration,
				LectureURL:    lec.LectureURL,
				IsPreviewFree: lec.IsPreviewFree,
			})
		}
		course.Chapters = append(course.Chapters, chapter)
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, thumbnail)
	if err != nil {
		return nil, err
	}
	if err := s.courses.UpdateThumbnail(ctx, course.ID, url); err != nil {
		return nil, err
	}
	course.Thumbnail = url

	return course, nil
}

func (s *EducatorService) Courses(ctx context.Context, educatorID string) ([]domain.Course, error) {
	return s.courses.ListByEducator(ctx, educatorID)
}

type DashboardData struct {
	TotalCourses  int             `json:"totalCourses"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	Enrolled      []EnrolledEntry `json:"enrolledStudentsData"`
}

type EnrolledEntry struct {
	CourseTitle  string     `json:"courseTitle"`
	StudentName  string     `json:"studentName"`
	StudentImage string     `json:"studentImage"`
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
}

// Dashboard агрегирует курсы преподавателя, заработок по завершенным
// покупкам и записанных студентов
func (s *EducatorService) Dashboard(ctx context.Context, educatorID string) (*DashboardData, error) {
	courses, err := s.courses.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	data := &DashboardData{
		TotalCourses:  len(courses),
		TotalEarnings: decimal.Zero,
	}
	if len(courseIDs) > 0 {
		data.TotalEarnings, err = s.purchases.TotalEarnings(ctx, courseIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, course := range courses {
		for _, student := range course.EnrolledStudents {
			data.Enrolled = append(data.Enrolled, EnrolledEntry{
				CourseTitle:  course.Title,
				StudentName:  student.Name,
				StudentImage: student.ImageURL,
			})
		}
	}

	return data, nil
}

// EnrolledStudents — завершенные покупки по курсам преподавателя
// со студентом, курсом и датой покупки
func (s *EducatorService) EnrolledStudents(ctx context.Context, educatorID string) ([]EnrolledEntry, error) {
	courses, err := s.courses.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}

	courseIDs := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	purchases, err := s.purchases.ListCompletedByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]EnrolledEntry, 0, len(purchases))
	for _, p := range purchases {
		entry := EnrolledEntry{}
		if p.Course != nil {
			entry.CourseTitle = p.Course.Title
		}
		if p.User != nil {
			entry.StudentName = p.User.Name
			entry.StudentImage = p.User.ImageURL
		}
		created := p.CreatedAt
		entry.PurchaseDate = &created
		entries = append(entries, entry)
	}
	return entries, nil
}
