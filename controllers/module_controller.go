package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
	"github.com/vnkhanh/e-course-backend/serializers"
)

type ModuleInput struct {
	ID          *uuid.UUID `json:"id,omitempty"` // có thể null: nếu null -> tạo mới
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
}

type ModuleBatchInput struct {
	Modules []ModuleInput `json:"modules"`
}

// GET /manage/courses/:id/modules
func ListCourseModules(c *gin.Context) {
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
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, "courses.id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	out := make([]serializers.ModuleResponse, 0, len(course.Modules))
	for _, m := range course.Modules {
		out = append(out, serializers.NewModuleResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"course_id": course.ID,
		"modules":   out,
	})
}

// PUT /manage/courses/:id/modules
// Đồng bộ cả danh sách module của một khóa học trong một lần submit:
// có id -> cập nhật, không id -> tạo mới, id cũ không còn trong danh sách -> xóa
func UpdateCourseModules(c *gin.Context) {
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

	var input ModuleBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	var course models.Course
	if err := config.DB.
		Scopes(models.OwnedCourses(ownerID)).
		Preload("Modules").
		First(&course, "courses.id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	existingModuleIDs := make(map[uuid.UUID]bool)
	for _, m := range course.Modules {
		existingModuleIDs[m.ID] = true
	}

	// Validate toàn bộ danh sách trước khi ghi: entry trỏ tới module cũ
	// mà tiêu đề trống là lỗi dữ liệu, từ chối cả batch, chưa lưu gì.
	// (Nếu bỏ qua entry này thì bước xóa phía dưới sẽ xóa nhầm module đó.)
	for _, mInput := range input.Modules {
		if mInput.ID != nil && existingModuleIDs[*mInput.ID] && strings.TrimSpace(mInput.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tiêu đề module không được trống"})
			return
		}
	}

	newModuleIDs := make(map[uuid.UUID]bool)

	for _, mInput := range input.Modules {
		title := strings.TrimSpace(mInput.Title)
		if title == "" {
			// Entry mới không có tiêu đề coi như form trống, bỏ qua
			continue
		}

		// Cập nhật module cũ
		if mInput.ID != nil {
			var existing models.Module
			if err := config.DB.First(&existing, "id = ? AND course_id = ?", mInput.ID, courseID).Error; err == nil {
				existing.Title = title
				existing.Description = mInput.Description
				existing.SortOrder = mInput.Order
				if err := config.DB.Save(&existing).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi cập nhật module"})
					return
				}
				newModuleIDs[existing.ID] = true
			}
		} else {
			// Thêm mới module
			newModule := models.Module{
				CourseID:    courseID,
				Title:       title,
				Description: mInput.Description,
				SortOrder:   mInput.Order,
			}
			if err := config.DB.Create(&newModule).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tạo module mới"})
				return
			}
			newModuleIDs[newModule.ID] = true
		}
	}

	// Xóa module không còn trong danh sách (kèm contents + items)
	for oldID := range existingModuleIDs {
		if !newModuleIDs[oldID] {
			err := config.DB.Transaction(func(tx *gorm.DB) error {
				if err := deleteModuleContents(tx, oldID); err != nil {
					return err
				}
				return tx.Delete(&models.Module{}, "id = ?", oldID).Error
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi xóa module"})
				return
			}
		}
	}

	// Trả danh sách sau đồng bộ
	var modules []models.Module
	if err := config.DB.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&modules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải lại dữ liệu sau khi cập nhật"})
		return
	}

	out := make([]serializers.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, serializers.NewModuleResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thành công",
		"modules": out,
	})
}

// deleteModuleContents xóa toàn bộ content của một module kèm item của chúng
func deleteModuleContents(tx *gorm.DB, moduleID uuid.UUID) error {
	var contents []models.Content
	if err := tx.Where("module_id = ?", moduleID).Find(&contents).Error; err != nil {
		return err
	}

	for _, ct := range contents {
		item, ok := models.NewItemForType(ct.ItemType)
		if !ok {
			continue
		}
		if err := tx.Delete(item, "id = ?", ct.ItemID).Error; err != nil {
			return err
		}
	}

	return tx.Where("module_id = ?", moduleID).Delete(&models.Content{}).Error
}
