package handlers

import (
	"net/http"

	"github.com/commquest/commquest-backend/internal/config"
	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authService services.AuthService

	authHandler       *AuthHandler
	catalogHandler    *CatalogHandler
	assessmentHandler *AssessmentHandler
	responseHandler   *ResponseHandler
	aiHandler         *AIHandler
	uploadHandler     *UploadHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authService: serviceManager.Auth(),
		authHandler: NewAuthHandler(serviceManager.Auth(), logger),
		catalogHandler: NewCatalogHandler(serviceManager.Catalog(), logger),
		assessmentHandler: NewAssessmentHandler(
			serviceManager.Assessment(),
			serviceManager.Submission(),
			serviceManager.Export(),
			logger,
		),
		responseHandler: NewResponseHandler(serviceManager.Response(), logger),
		aiHandler:       NewAIHandler(serviceManager.Generation(), logger),
		uploadHandler:   NewUploadHandler(cfg.UploadDir, cfg.MaxUploadBytes, logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "commquest-backend",
		})
	})

	api := router.Group("/api")
	api.Use(GeneralRateLimit())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", AuthRateLimit(), hm.authHandler.Register)
			auth.POST("/login", AuthRateLimit(), hm.authHandler.Login)
			auth.GET("/me", RequireAuth(hm.authService), hm.authHandler.Me)
			auth.PUT("/change-password", RequireAuth(hm.authService), hm.authHandler.ChangePassword)
			auth.POST("/logout", RequireAuth(hm.authService), hm.authHandler.Logout)
		}

		modules := api.Group("/modules", RequireAuth(hm.authService))
		{
			modules.GET("", hm.catalogHandler.ListModules)
			modules.GET("/:slug/sections", hm.catalogHandler.GetModuleSections)
		}

		// gin rejects a literal segment alongside :slug, so section rules
		// live outside the /modules subtree.
		api.GET("/sections/:sectionId/rules", RequireAuth(hm.authService), hm.catalogHandler.GetSectionRules)

		assessments := api.Group("/assessments", RequireAuth(hm.authService))
		{
			assessments.POST("", RequireAdmin(), hm.assessmentHandler.CreateAssessment)
			assessments.GET("/:assessmentId", hm.assessmentHandler.GetAssessment)
			assessments.POST("/:assessmentId/questions", RequireAdmin(), hm.assessmentHandler.AddQuestions)
			assessments.GET("/:assessmentId/questions", hm.assessmentHandler.ListQuestions)
			assessments.POST("/:assessmentId/submit", hm.assessmentHandler.Submit)
			assessments.GET("/:assessmentId/results", hm.assessmentHandler.GetResults)
			assessments.GET("/:assessmentId/results/export", RequireAdmin(), hm.assessmentHandler.ExportResults)
		}

		responses := api.Group("/responses", RequireAuth(hm.authService))
		{
			responses.POST("", hm.responseHandler.SaveResponse)
			responses.GET("", hm.responseHandler.ListResponses)
		}

		ai := api.Group("/ai", RequireAuth(hm.authService), RequireAdmin())
		{
			ai.POST("/generate-questions", AIRateLimit(), hm.aiHandler.GenerateQuestions)
		}

		upload := api.Group("/upload", RequireAuth(hm.authService))
		{
			upload.POST("", hm.uploadHandler.Upload)
			upload.GET("/:filename", hm.uploadHandler.Serve)
		}
	}
}
