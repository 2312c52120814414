package serializers_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-course-backend/models"
	"github.com/vnkhanh/e-course-backend/serializers"
)

func sampleCourse() models.Course {
	now := time.Now()
	item := &models.TextItem{ID: uuid.New(), Title: "Bài đọc", Body: "nội dung"}

	return models.Course{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "Giải tích 1",
		Slug:      "giai-tich-1",
		Overview:  "tổng quan",
		CreatedAt: now,
		Subject: models.Subject{
			ID:    uuid.New(),
			Title: "Toán",
			Slug:  "toan",
		},
		Modules: []models.Module{
			{
				ID:          uuid.New(),
				Title:       "Chương 1",
				Description: "mở đầu",
				SortOrder:   1,
				Contents: []models.Content{
					{
						ID:        uuid.New(),
						SortOrder: 1,
						ItemType:  models.ContentTypeText,
						ItemID:    item.ID,
						Item:      item,
					},
				},
			},
		},
	}
}

func TestCourseShallowResponse(t *testing.T) {
	course := sampleCourse()
	resp := serializers.NewCourseResponse(course)

	assert.Equal(t, course.ID, resp.ID)
	assert.Equal(t, course.Title, resp.Title)
	assert.Equal(t, course.OwnerID, resp.Owner)
	assert.Equal(t, course.Subject.Slug, resp.Subject.Slug)
	require.Len(t, resp.Modules, 1)
	assert.Equal(t, 1, resp.Modules[0].Order)
	assert.Equal(t, "Chương 1", resp.Modules[0].Title)
}

func TestCourseDeepResponseUsesRender(t *testing.T) {
	course := sampleCourse()
	resp := serializers.NewCourseWithContentsResponse(course)

	require.Len(t, resp.Modules, 1)
	require.Len(t, resp.Modules[0].Contents, 1)

	content := resp.Modules[0].Contents[0]
	assert.Equal(t, 1, content.Order)

	// item phải đúng bằng output Render() của chính item đó
	want := course.Modules[0].Contents[0].Item.Render()
	assert.Equal(t, want, content.Item)
}

func TestCourseListResponseEmpty(t *testing.T) {
	resp := serializers.NewCourseListResponse(nil)
	require.NotNil(t, resp)
	assert.Empty(t, resp)
}
