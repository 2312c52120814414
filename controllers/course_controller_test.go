package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
)

func TestCreateCourseForcesOwner(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	lecturer := createUser(t, models.RoleLecturer)
	other := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "toan-cao-cap")

	// Client cố gán owner khác trong body -> server phải bỏ qua
	body := map[string]interface{}{
		"subject_id": subject.ID.String(),
		"title":      "Giải tích 1",
		"overview":   "Khóa học nhập môn",
		"owner_id":   other.ID.String(),
	}
	w := performJSON(r, http.MethodPost, "/api/manage/courses", body, tokenFor(t, lecturer))
	require.Equal(t, http.StatusCreated, w.Code)

	var course models.Course
	require.NoError(t, config.DB.First(&course, "title = ?", "Giải tích 1").Error)
	assert.Equal(t, lecturer.ID, course.OwnerID)
	assert.Equal(t, "giai-tich-1", course.Slug)
}

func TestManageCourseRequiresAuthAndRole(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	// Không token -> 401
	w := performJSON(r, http.MethodGet, "/api/manage/courses", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Sinh viên (thiếu quyền) -> 403
	student := createUser(t, models.RoleStudent)
	w = performJSON(r, http.MethodGet, "/api/manage/courses", nil, tokenFor(t, student))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCourseOwnershipScope(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	userA := createUser(t, models.RoleLecturer)
	userB := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "vat-ly")
	course := createCourse(t, userA, subject, "Cơ học")

	update := map[string]interface{}{
		"subject_id": subject.ID.String(),
		"title":      "Cơ học đại cương",
	}

	// B sửa / xóa khóa học của A -> 404, không phải 403
	w := performJSON(r, http.MethodPut, "/api/manage/courses/"+course.ID.String(), update, tokenFor(t, userB))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodDelete, "/api/manage/courses/"+course.ID.String(), nil, tokenFor(t, userB))
	require.Equal(t, http.StatusNotFound, w.Code)

	// Danh sách của B không thấy khóa học của A
	w = performJSON(r, http.MethodGet, "/api/manage/courses", nil, tokenFor(t, userB))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// A sửa được khóa học của mình
	w = performJSON(r, http.MethodPut, "/api/manage/courses/"+course.ID.String(), update, tokenFor(t, userA))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Course
	require.NoError(t, config.DB.First(&updated, "id = ?", course.ID).Error)
	assert.Equal(t, "Cơ học đại cương", updated.Title)
	assert.Equal(t, userA.ID, updated.OwnerID)
}

func TestDeleteCourseCascades(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "hoa-hoc")
	course := createCourse(t, owner, subject, "Hóa hữu cơ")
	module := createModule(t, course, "Chương 1", 1)

	item := models.TextItem{OwnerID: owner.ID, Title: "Bài đọc", Body: "nội dung"}
	require.NoError(t, config.DB.Create(&item).Error)
	content := models.Content{ModuleID: module.ID, SortOrder: 1, ItemType: models.ContentTypeText, ItemID: item.ID}
	require.NoError(t, config.DB.Create(&content).Error)

	w := performJSON(r, http.MethodDelete, "/api/manage/courses/"+course.ID.String(), nil, tokenFor(t, owner))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	config.DB.Model(&models.Course{}).Count(&count)
	assert.Zero(t, count)
	config.DB.Model(&models.Module{}).Count(&count)
	assert.Zero(t, count)
	config.DB.Model(&models.Content{}).Count(&count)
	assert.Zero(t, count)
	config.DB.Model(&models.TextItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestPublicCourseListFilterAndPagination(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createUser(t, models.RoleLecturer)
	subjectA := createSubject(t, "lich-su")
	subjectB := createSubject(t, "dia-ly")
	courseA1 := createCourse(t, owner, subjectA, "Lịch sử cổ đại")
	createCourse(t, owner, subjectA, "Lịch sử trung đại")
	createCourse(t, owner, subjectA, "Lịch sử cận đại")
	createCourse(t, owner, subjectB, "Địa lý tự nhiên")

	// Không lọc: thấy đủ 4 khóa học
	w := performJSON(r, http.MethodGet, "/api/courses", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 4, body["total"])
	require.Len(t, body["data"], 4)

	// Lọc theo slug môn học + phân trang: total đếm trước khi cắt trang
	w = performJSON(r, http.MethodGet, "/api/courses?subject="+subjectA.Slug+"&limit=2&page=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 2, body["limit"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)
	// Join với subjects không được làm lẫn cột của course
	first := data[0].(map[string]interface{})
	assert.Contains(t, []string{"Lịch sử cổ đại", "Lịch sử trung đại", "Lịch sử cận đại"}, first["title"])
	assert.NotEqual(t, subjectA.Title, first["title"])

	w = performJSON(r, http.MethodGet, "/api/courses?subject="+subjectA.Slug+"&limit=2&page=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 3, body["total"])
	require.Len(t, body["data"], 1)

	// Môn học khác chỉ còn 1 khóa
	w = performJSON(r, http.MethodGet, "/api/courses?subject="+subjectB.Slug, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 1, body["total"])
	data, ok = body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, courseA1.OwnerID.String(), data[0].(map[string]interface{})["owner"])
	assert.Equal(t, "Địa lý tự nhiên", data[0].(map[string]interface{})["title"])
}

func TestPublicCourseShallowRepresentation(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "tin-hoc")
	course := createCourse(t, owner, subject, "Lập trình Go")
	createModule(t, course, "Chương 1", 1)
	createModule(t, course, "Chương 2", 2)

	w := performJSON(r, http.MethodGet, "/api/courses/"+course.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, course.ID.String(), body["id"])
	assert.Equal(t, "Lập trình Go", body["title"])
	assert.Equal(t, owner.ID.String(), body["owner"])
	assert.Contains(t, body, "overview")
	assert.Contains(t, body, "created")

	subjectBody, ok := body["subject"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, subject.ID.String(), subjectBody["id"])

	modules, ok := body["modules"].([]interface{})
	require.True(t, ok)
	require.Len(t, modules, 2)
	first := modules[0].(map[string]interface{})
	assert.Equal(t, "Chương 1", first["title"])
	assert.EqualValues(t, 1, first["order"])
	// Shallow: không có contents trong module
	assert.NotContains(t, first, "contents")
}

func TestPublicCourseDeepRepresentation(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createUser(t, models.RoleLecturer)
	subject := createSubject(t, "ky-thuat")
	course := createCourse(t, owner, subject, "Vẽ kỹ thuật")
	module := createModule(t, course, "Chương 1", 1)

	item := models.VideoItem{OwnerID: owner.ID, Title: "Video hướng dẫn", URL: "https://youtu.be/xyz"}
	require.NoError(t, config.DB.Create(&item).Error)
	content := models.Content{ModuleID: module.ID, SortOrder: 1, ItemType: models.ContentTypeVideo, ItemID: item.ID}
	require.NoError(t, config.DB.Create(&content).Error)

	w := performJSON(r, http.MethodGet, "/api/courses/"+course.ID.String()+"/contents", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	modules, ok := body["modules"].([]interface{})
	require.True(t, ok)
	require.Len(t, modules, 1)

	moduleBody := modules[0].(map[string]interface{})
	contents, ok := moduleBody["contents"].([]interface{})
	require.True(t, ok)
	require.Len(t, contents, 1)

	entry := contents[0].(map[string]interface{})
	assert.EqualValues(t, 1, entry["order"])

	// item trong deep representation đúng bằng output Render() của item
	got, ok := entry["item"].(map[string]interface{})
	require.True(t, ok)
	want := item.Render()
	assert.Equal(t, want["type"], got["type"])
	assert.Equal(t, want["title"], got["title"])
	assert.Equal(t, want["url"], got["url"])
	assert.Equal(t, want["html"], got["html"])
	assert.NotContains(t, got, "owner_id")
}
