package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
)

func TestUpdateCourseModulesBatch(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "sinh-hoc")
	course := createCourse(t, owner, subject, "Di truyền học")
	keep := createModule(t, course, "Chương giữ lại", 1)
	drop := createModule(t, course, "Chương bị bỏ", 2)

	// keep: cập nhật, thêm 1 module mới, drop: không gửi lên -> xóa
	body := map[string]interface{}{
		"modules": []map[string]interface{}{
			{"id": keep.ID.String(), "title": "Chương 1 đổi tên", "description": "mới", "order": 1},
			{"title": "Chương mới", "order": 2},
		},
	}

	w := performJSON(r, http.MethodPut, "/api/manage/courses/"+course.ID.String()+"/modules", body, tokenFor(t, owner))
	require.Equal(t, http.StatusOK, w.Code)

	var modules []models.Module
	require.NoError(t, config.DB.Where("course_id = ?", course.ID).Order("sort_order ASC").Find(&modules).Error)
	require.Len(t, modules, 2)

	assert.Equal(t, keep.ID, modules[0].ID)
	assert.Equal(t, "Chương 1 đổi tên", modules[0].Title)
	assert.Equal(t, "mới", modules[0].Description)
	assert.Equal(t, "Chương mới", modules[1].Title)

	var count int64
	config.DB.Model(&models.Module{}).Where("id = ?", drop.ID).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateCourseModulesBlankTitleRejectsBatch(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "kinh-te")
	course := createCourse(t, owner, subject, "Kinh tế vi mô")
	module := createModule(t, course, "Chương 1", 1)

	item := models.TextItem{OwnerID: owner.ID, Title: "Bài đọc", Body: "x"}
	require.NoError(t, config.DB.Create(&item).Error)
	content := models.Content{ModuleID: module.ID, SortOrder: 1, ItemType: models.ContentTypeText, ItemID: item.ID}
	require.NoError(t, config.DB.Create(&content).Error)

	// Entry trỏ tới module cũ nhưng tiêu đề trắng -> 400, không được
	// biến thành xóa module (kèm contents) như một bản lưu dở dang
	body := map[string]interface{}{
		"modules": []map[string]interface{}{
			{"id": module.ID.String(), "title": "   ", "order": 1},
		},
	}
	w := performJSON(r, http.MethodPut, "/api/manage/courses/"+course.ID.String()+"/modules", body, tokenFor(t, owner))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.Module
	require.NoError(t, config.DB.First(&unchanged, "id = ?", module.ID).Error)
	assert.Equal(t, "Chương 1", unchanged.Title)

	var count int64
	config.DB.Model(&models.Content{}).Where("module_id = ?", module.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	config.DB.Model(&models.TextItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateCourseModulesForeignCourse(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	userA := createUser(t, models.RoleLecturer)
	userB := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "triet-hoc")
	course := createCourse(t, userA, subject, "Logic học")
	module := createModule(t, course, "Chương 1", 1)

	body := map[string]interface{}{
		"modules": []map[string]interface{}{
			{"id": module.ID.String(), "title": "Bị sửa trộm", "order": 9},
		},
	}

	// B không sở hữu khóa học -> 404, module giữ nguyên
	w := performJSON(r, http.MethodPut, "/api/manage/courses/"+course.ID.String()+"/modules", body, tokenFor(t, userB))
	require.Equal(t, http.StatusNotFound, w.Code)

	var unchanged models.Module
	require.NoError(t, config.DB.First(&unchanged, "id = ?", module.ID).Error)
	assert.Equal(t, "Chương 1", unchanged.Title)
	assert.Equal(t, 1, unchanged.SortOrder)
}
