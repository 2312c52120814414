package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
	"github.com/vnkhanh/e-course-backend/serializers"
	"github.com/vnkhanh/e-course-backend/ws"
)

type CourseInput struct {
	SubjectID string `json:"subject_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Overview  string `json:"overview"`
}

/*========= MANAGE (owner-scoped) ==========*/

// GET /manage/courses
// Chỉ trả về khóa học của chính người đăng nhập
func ListMyCourses(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	var courses []models.Course
	if err := config.DB.
		Scopes(models.OwnedCourses(ownerID)).
		Preload("Subject").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("courses.created_at DESC").
		Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách khóa học"})
		return
	}

	c.JSON(http.StatusOK, serializers.NewCourseListResponse(courses))
}

// POST /manage/courses
// owner luôn là người đăng nhập, bỏ qua mọi giá trị client gửi lên
func CreateCourse(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subjectID, err := uuid.Parse(input.SubjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject_id không hợp lệ"})
		return
	}

	var subject models.Subject
	if err := config.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Môn học không tồn tại"})
		return
	}

	title := strings.TrimSpace(input.Title)
	course := models.Course{
		SubjectID: subjectID,
		OwnerID:   ownerID, // gán tại server, không lấy từ request body
		Title:     title,
		Slug:      slug.Make(title),
		Overview:  input.Overview,
	}

	if err := config.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo khóa học"})
		return
	}

	ws.BroadcastCourseListChanged()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo khóa học thành công",
		"course":  course,
	})
}

// PUT /manage/courses/:id
func UpdateCourse(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Khóa học của người khác coi như không tồn tại
	var course models.Course
	if err := config.DB.
		Scopes(models.OwnedCourses(ownerID)).
		First(&course, "courses.id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	subjectID, err := uuid.Parse(input.SubjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject_id không hợp lệ"})
		return
	}
	var subject models.Subject
	if err := config.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Môn học không tồn tại"})
		return
	}

	title := strings.TrimSpace(input.Title)
	course.SubjectID = subjectID
	course.Title = title
	course.Slug = slug.Make(title)
	course.Overview = input.Overview
	// OwnerID giữ nguyên

	if err := config.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật khóa học thất bại"})
		return
	}

	ws.BroadcastCourseListChanged()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thành công",
		"course":  course,
	})
}

// DELETE /manage/courses/:id
// Xóa khóa học kéo theo module, content và item của chúng
func DeleteCourse(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var course models.Course
	if err := config.DB.
		Scopes(models.OwnedCourses(ownerID)).
		First(&course, "courses.id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var modules []models.Module
		if err := tx.Where("course_id = ?", course.ID).Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			if err := deleteModuleContents(tx, m.ID); err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Module{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Xóa khóa học thất bại"})
		return
	}

	ws.BroadcastCourseListChanged()

	c.JSON(http.StatusOK, gin.H{"message": "Xóa khóa học thành công"})
}

/*========= PUBLIC ==========*/

// GET /api/courses
// Danh sách khóa học dạng shallow (metadata + module, không có contents)
func GetCourses(c *gin.Context) {
	query := config.DB.Model(&models.Course{})

	// Lọc theo môn học (slug)
	if subjectSlug := c.Query("subject"); subjectSlug != "" {
		query = query.
			Joins("JOIN subjects ON subjects.id = courses.subject_id").
			Where("subjects.slug = ?", subjectSlug)
	}

	// Tìm kiếm theo tiêu đề
	if search := c.Query("search"); search != "" {
		query = query.Where("courses.title ILIKE ?", "%"+search+"%")
	}

	// Phân trang
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng số khóa học"})
		return
	}

	var courses []models.Course
	if err := query.
		Select("courses.*").
		Preload("Subject").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("courses.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  serializers.NewCourseListResponse(courses),
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /api/courses/:id
func GetCourseDetail(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var course models.Course
	if err := config.DB.
		Preload("Subject").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	c.JSON(http.StatusOK, serializers.NewCourseResponse(course))
}

// GET /api/courses/:id/contents
// Dạng deep: module -> contents -> item đã render
func GetCourseContents(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var course models.Course
	if err := config.DB.
		Preload("Subject").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Modules.Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	// Nạp item đa hình cho từng content
	for i := range course.Modules {
		for j := range course.Modules[i].Contents {
			if err := course.Modules[i].Contents[j].LoadItem(config.DB); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể nạp nội dung"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, serializers.NewCourseWithContentsResponse(course))
}
