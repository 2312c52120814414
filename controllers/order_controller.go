package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
)

// Hai endpoint reorder nhận body {"<id>": <order>, ...} từ drag-and-drop.
// Mỗi id là một update có điều kiện độc lập, giới hạn trong scope của owner:
// id không thuộc về người gửi thì không được cập nhật và trả về trong "skipped"
// để client biết (không lỗi cả batch). Gửi lại cùng body cho cùng kết quả.

// POST /manage/modules/order
func ModuleOrder(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	var input map[string]int
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	skipped := []string{}
	for idStr, order := range input {
		moduleID, err := uuid.Parse(idStr)
		if err != nil {
			skipped = append(skipped, idStr)
			continue
		}

		res := config.DB.Model(&models.Module{}).
			Where("id = ? AND course_id IN (?)", moduleID, models.OwnedCourseIDs(config.DB, ownerID)).
			Update("sort_order", order)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật thứ tự"})
			return
		}
		if res.RowsAffected == 0 {
			skipped = append(skipped, idStr)
		}
	}

	resp := gin.H{"saved": "OK"}
	if len(skipped) > 0 {
		resp["skipped"] = skipped
	}
	c.JSON(http.StatusOK, resp)
}

// POST /manage/contents/order
func ContentOrder(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	var input map[string]int
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	skipped := []string{}
	for idStr, order := range input {
		contentID, err := uuid.Parse(idStr)
		if err != nil {
			skipped = append(skipped, idStr)
			continue
		}

		res := config.DB.Model(&models.Content{}).
			Where("id = ? AND module_id IN (?)", contentID, models.OwnedModuleIDs(config.DB, ownerID)).
			Update("sort_order", order)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật thứ tự"})
			return
		}
		if res.RowsAffected == 0 {
			skipped = append(skipped, idStr)
		}
	}

	resp := gin.H{"saved": "OK"}
	if len(skipped) > 0 {
		resp["skipped"] = skipped
	}
	c.JSON(http.StatusOK, resp)
}
