package api

import (
	"github.com/gin-gonic/gin"
	"github.com/icalorie/icalorie-backend/internal/api/controller"
	"github.com/icalorie/icalorie-backend/internal/api/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(
	r *gin.Engine,
	authCtrl *controller.AuthController,
	scanCtrl *controller.ScanController,
	mealCtrl *controller.MealController,
	billingCtrl *controller.BillingController,
	feedbackCtrl *controller.FeedbackController,
) {
	r.Use(middleware.Cors())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authCtrl.Register)
		public.POST("/auth/login", authCtrl.Login)
		public.GET("/scans/pricing", billingCtrl.Pricing) // 未登录也能看价
	}

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		protected.GET("/auth/me", authCtrl.Me)
		protected.PUT("/auth/profile", authCtrl.UpdateProfile)
		protected.PUT("/auth/password", authCtrl.ChangePassword)
		protected.PUT("/auth/profile-picture", authCtrl.UploadProfilePicture)

		protected.GET("/auth/scans", billingCtrl.Balance)
		protected.GET("/auth/scans/usage", billingCtrl.Usage)
		protected.POST("/auth/scans/verify-android-purchase", billingCtrl.VerifyAndroidPurchase)

		protected.POST("/scan", scanCtrl.Scan)
		protected.POST("/scan/confirm", scanCtrl.Confirm)

		protected.POST("/log", mealCtrl.CreateLog)
		protected.GET("/log", mealCtrl.ListLogs)
		protected.GET("/log/summary", mealCtrl.Summary)
		protected.GET("/log/:id", mealCtrl.GetLog)
		protected.DELETE("/log/:id", mealCtrl.DeleteLog)

		protected.POST("/feedback", feedbackCtrl.Submit)
	}
}
