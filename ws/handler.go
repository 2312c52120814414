package ws

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
	"github.com/vnkhanh/e-course-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // chỉ để phát triển, nên giới hạn ở production
	},
}

// WebSocket chat theo khóa học
// GET /ws/courses/:id/chat?token=...
func HandleCourseChatWebSocket(c *gin.Context) {
	courseID := c.Param("id")
	token := c.Query("token")

	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Thiếu token"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token không hợp lệ hoặc hết hạn"})
		return
	}

	// Khóa học phải tồn tại
	var course models.Course
	if err := config.DB.Select("id").First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	// Lấy tên hiển thị của người chat
	var user models.User
	if err := config.DB.Select("id, full_name").First(&user, "id = ?", claims.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không tìm thấy người dùng"})
		return
	}

	log.Printf("Course chat WS connected: courseID=%s, userID=%s\n", courseID, claims.UserID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade thất bại:", err)
		return
	}
	H.Register(courseID, conn)
	defer H.Unregister(courseID, conn)

	// Đọc tin nhắn từ client và phát cho cả phòng
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}

		text := strings.TrimSpace(string(payload))
		if text == "" {
			continue
		}

		SendChatMessage(ChatMessage{
			CourseID: courseID,
			UserID:   claims.UserID,
			FullName: user.FullName,
			Text:     text,
			SentAt:   time.Now(),
		})
	}
}

// WebSocket global: nhận signal thay đổi danh sách khóa học
// GET /ws/status?token=...
func HandleGlobalWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Thiếu token"})
		return
	}
	if _, err := utils.VerifyToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token không hợp lệ hoặc hết hạn"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade thất bại:", err)
		return
	}
	H.RegisterGlobal(conn)
	defer H.UnregisterGlobal(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
