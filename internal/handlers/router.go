package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/config"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/services"
	"github.com/entrenouscours/course-service/internal/utils"
)

type HandlerManager struct {
	courseHandler  *CourseHandler
	requestHandler *RequestHandler
	profileHandler *ProfileHandler
	adminHandler   *AdminHandler
	chatHandler    *ChatHandler
	uploadHandler  *UploadHandler
	authMiddleware *CasdoorAuthMiddleware
	repo           repositories.Repository
	logger         utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	cfg *config.Config,
	repo repositories.Repository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		courseHandler:  NewCourseHandler(serviceManager.Course(), logger),
		requestHandler: NewRequestHandler(serviceManager.Request(), logger),
		profileHandler: NewProfileHandler(serviceManager.Profile(), logger),
		adminHandler:   NewAdminHandler(serviceManager.Admin(), logger),
		chatHandler:    NewChatHandler(serviceManager.Chat(), logger),
		uploadHandler:  NewUploadHandler(serviceManager.Upload(), logger),
		authMiddleware: NewCasdoorAuthMiddleware(cfg, repo.User(), logger),
		repo:           repo,
		logger:         logger,
	}
}

// SetupRoutes mounts the whole API surface.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")
	{
		// Public surface
		v1.POST("/chat", hm.chatHandler.Chat)
		v1.GET("/courses", hm.courseHandler.ListCourses)
		v1.GET("/courses/:id", hm.courseHandler.GetCourse)
		v1.GET("/seed-demo", hm.courseHandler.SeedDemo)
		v1.GET("/profiles/:userId", hm.profileHandler.GetPublicProfile)

		// Authenticated surface
		authed := v1.Group("")
		authed.Use(hm.authMiddleware.AuthMiddleware())
		{
			authed.POST("/courses", hm.courseHandler.CreateCourse)
			authed.DELETE("/courses/:id", hm.courseHandler.DeleteCourse)
			authed.GET("/my-courses", hm.courseHandler.MyCourses)

			authed.POST("/courses/:id/requests", hm.requestHandler.CreateRequest)
			authed.GET("/courses/:id/requests", hm.requestHandler.ListCourseRequests)
			authed.PATCH("/course-requests/:id", hm.requestHandler.DecideRequest)

			authed.GET("/profile", hm.profileHandler.GetProfile)
			authed.PUT("/profile", hm.profileHandler.UpdateProfile)

			authed.POST("/upload", hm.uploadHandler.Upload)

			// Admin allow-list surface
			admin := authed.Group("/admin")
			admin.Use(hm.authMiddleware.AdminMiddleware())
			{
				admin.GET("/stats", hm.adminHandler.GetStats)
				admin.GET("/users", hm.adminHandler.ListUsers)
				admin.PATCH("/users/:id", hm.adminHandler.UpdateUserRole)
				admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)
				admin.GET("/courses", hm.adminHandler.ListCourses)
				admin.POST("/seed-images", hm.adminHandler.SeedImages)
				admin.GET("/export", hm.adminHandler.Export)
			}
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
