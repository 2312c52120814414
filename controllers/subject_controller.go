package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
	"github.com/vnkhanh/e-course-backend/serializers"
)

// Input cho Create / Update
type SubjectInput struct {
	Title string `json:"title" binding:"required"`
}

// POST /admin/subjects
func CreateSubject(c *gin.Context) {
	var input SubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên môn học bắt buộc"})
		return
	}

	title := strings.TrimSpace(input.Title)

	// === Kiểm tra trùng tên ===
	var count int64
	config.DB.Model(&models.Subject{}).Where("LOWER(title) = LOWER(?)", title).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên môn học đã tồn tại"})
		return
	}

	subject := models.Subject{
		Title: title,
		Slug:  slug.Make(title),
	}

	if err := config.DB.Create(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo môn học"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo môn học thành công",
		"subject": subject,
	})
}

// PUT /admin/subjects/:id
func UpdateSubject(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var input SubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	var subject models.Subject
	if err := config.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy môn học"})
		return
	}

	title := strings.TrimSpace(input.Title)
	slugValue := slug.Make(title)

	var count int64
	config.DB.Model(&models.Subject{}).
		Where("(LOWER(title) = LOWER(?) OR slug = ?) AND id <> ?", title, slugValue, subjectID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên môn học đã tồn tại"})
		return
	}

	subject.Title = title
	subject.Slug = slugValue

	if err := config.DB.Save(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật môn học thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thành công",
		"subject": subject,
	})
}

// DELETE /admin/subjects/:id
func DeleteSubject(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var subject models.Subject
	if err := config.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy môn học"})
		return
	}

	// Không xóa môn học còn khóa học tham chiếu
	var courseCount int64
	config.DB.Model(&models.Course{}).Where("subject_id = ?", subjectID).Count(&courseCount)
	if courseCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Môn học còn khóa học, không thể xóa"})
		return
	}

	if err := config.DB.Delete(&subject).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa môn học thành công"})
}

// GET /api/subjects
func GetSubjects(c *gin.Context) {
	var subjects []models.Subject
	if err := config.DB.Order("title ASC").Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách môn học"})
		return
	}

	out := make([]serializers.SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, serializers.NewSubjectResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/subjects/:id
func GetSubjectDetail(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var subject models.Subject
	if err := config.DB.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Courses.Subject").
		Preload("Courses.Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&subject, "id = ?", subjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy môn học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": serializers.NewSubjectResponse(subject),
		"courses": serializers.NewCourseListResponse(subject.Courses),
	})
}
