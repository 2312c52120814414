package serializers

import (
	"time"

	"github.com/google/uuid"
	"github.com/vnkhanh/e-course-backend/models"
)

// Hai dạng biểu diễn API của khóa học:
// - shallow: metadata + danh sách module, không có contents
// - deep:    cây module -> contents -> item đã render
// Item đa hình không bao giờ được serialize cột thô,
// chỉ nhúng kết quả Render() của chính nó.

type SubjectResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type ModuleResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
}

type CourseResponse struct {
	ID       uuid.UUID        `json:"id"`
	Title    string           `json:"title"`
	Overview string           `json:"overview"`
	Subject  SubjectResponse  `json:"subject"`
	Slug     string           `json:"slug"`
	Modules  []ModuleResponse `json:"modules"`
	Created  time.Time        `json:"created"`
	Owner    uuid.UUID        `json:"owner"`
}

type ContentResponse struct {
	Order int                    `json:"order"`
	Item  map[string]interface{} `json:"item"`
}

type ModuleWithContentsResponse struct {
	Order       int               `json:"order"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Contents    []ContentResponse `json:"contents"`
}

type CourseWithContentsResponse struct {
	ID       uuid.UUID                    `json:"id"`
	Subject  SubjectResponse              `json:"subject"`
	Title    string                       `json:"title"`
	Slug     string                       `json:"slug"`
	Overview string                       `json:"overview"`
	Created  time.Time                    `json:"created"`
	Owner    uuid.UUID                    `json:"owner"`
	Modules  []ModuleWithContentsResponse `json:"modules"`
}

func NewSubjectResponse(s models.Subject) SubjectResponse {
	return SubjectResponse{ID: s.ID, Title: s.Title, Slug: s.Slug}
}

func NewModuleResponse(m models.Module) ModuleResponse {
	return ModuleResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Order:       m.SortOrder,
	}
}

// NewCourseResponse yêu cầu course đã Preload Subject và Modules
func NewCourseResponse(course models.Course) CourseResponse {
	modules := make([]ModuleResponse, 0, len(course.Modules))
	for _, m := range course.Modules {
		modules = append(modules, NewModuleResponse(m))
	}

	return CourseResponse{
		ID:       course.ID,
		Title:    course.Title,
		Overview: course.Overview,
		Subject:  NewSubjectResponse(course.Subject),
		Slug:     course.Slug,
		Modules:  modules,
		Created:  course.CreatedAt,
		Owner:    course.OwnerID,
	}
}

func NewCourseListResponse(courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

// NewContentResponse yêu cầu content đã LoadItem
func NewContentResponse(content models.Content) ContentResponse {
	resp := ContentResponse{Order: content.SortOrder}
	if content.Item != nil {
		resp.Item = content.Item.Render()
	}
	return resp
}

// NewCourseWithContentsResponse yêu cầu course đã Preload
// Subject, Modules, Modules.Contents và mọi content đã LoadItem
func NewCourseWithContentsResponse(course models.Course) CourseWithContentsResponse {
	modules := make([]ModuleWithContentsResponse, 0, len(course.Modules))
	for _, m := range course.Modules {
		contents := make([]ContentResponse, 0, len(m.Contents))
		for _, ct := range m.Contents {
			contents = append(contents, NewContentResponse(ct))
		}
		modules = append(modules, ModuleWithContentsResponse{
			Order:       m.SortOrder,
			Title:       m.Title,
			Description: m.Description,
			Contents:    contents,
		})
	}

	return CourseWithContentsResponse{
		ID:       course.ID,
		Subject:  NewSubjectResponse(course.Subject),
		Title:    course.Title,
		Slug:     course.Slug,
		Overview: course.Overview,
		Created:  course.CreatedAt,
		Owner:    course.OwnerID,
		Modules:  modules,
	}
}
