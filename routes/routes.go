package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/e-course-backend/controllers"
	"github.com/vnkhanh/e-course-backend/middleware"
	"github.com/vnkhanh/e-course-backend/ws"
	"gorm.io/gorm"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// API public chỉ đọc
	{
		api.GET("/subjects", controllers.GetSubjects)
		api.GET("/subjects/:id", controllers.GetSubjectDetail)
		api.GET("/courses", controllers.GetCourses)
		api.GET("/courses/:id", controllers.GetCourseDetail)
		api.GET("/courses/:id/contents", controllers.GetCourseContents)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin"))

		// Quản lý môn học (chỉ admin)
		admin.POST("/subjects", controllers.CreateSubject)
		admin.PUT("/subjects/:id", controllers.UpdateSubject)
		admin.DELETE("/subjects/:id", controllers.DeleteSubject)
	}

	manage := api.Group("/manage")
	{
		manage.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin", "teacher"))

		// Quản lý khóa học (lọc theo owner)
		manage.GET("/courses", controllers.ListMyCourses)
		manage.POST("/courses", controllers.CreateCourse)
		manage.PUT("/courses/:id", controllers.UpdateCourse)
		manage.DELETE("/courses/:id", controllers.DeleteCourse)

		// Module: đồng bộ cả danh sách trong một lần submit
		manage.GET("/courses/:id/modules", controllers.ListCourseModules)
		manage.PUT("/courses/:id/modules", controllers.UpdateCourseModules)

		// Nội dung đa hình của module
		manage.GET("/modules/:id/contents", controllers.ListModuleContents)
		manage.POST("/modules/:id/contents/:type", controllers.CreateContent)
		manage.PUT("/contents/:id", controllers.UpdateContent)
		manage.DELETE("/contents/:id", controllers.DeleteContent)

		// Reorder (drag-and-drop)
		manage.POST("/modules/order", controllers.ModuleOrder)
		manage.POST("/contents/order", controllers.ContentOrder)
	}

	r.GET("/ws/courses/:id/chat", ws.HandleCourseChatWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}
