package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID lấy user id đã được AuthMiddleware lưu vào context
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := c.GetString("user_id")
	if userIDStr == "" {
		return uuid.Nil, errors.New("chưa đăng nhập")
	}
	return uuid.Parse(userIDStr)
}
