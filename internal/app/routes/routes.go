package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/schoolvax/vaccine-portal/internal/app/controllers"
	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	vaccineController *controllers.VaccineController,
	driveController *controllers.DriveController,
	recordController *controllers.RecordController,
	dashboardController *controllers.DashboardController,
	reportController *controllers.ReportController,
	gradeController *controllers.GradeController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.GetProfile)
		authenticated.GET("/grades", gradeController.GetGrades)
		authenticated.POST("/auth/users", authMiddleware.RoleRequired(models.RoleAdmin), authController.CreateUser)

		// Dashboard and reports are read-only for every authenticated role
		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardController.GetStats)
			dashboard.GET("/grades", dashboardController.GetGradeStats)
			dashboard.GET("/status", dashboardController.GetStatusSummary)
			dashboard.GET("/upcoming-drives", dashboardController.GetUpcomingDrives)
		}

		reports := authenticated.Group("/reports")
		{
			reports.GET("/records.csv", reportController.DownloadCSV)
			reports.GET("/records.xlsx", reportController.DownloadXLSX)
			reports.GET("/students.csv", reportController.DownloadStudentsCSV)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetAllStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
			students.POST("/import", studentController.ImportStudents)
		}

		vaccines := authenticated.Group("/vaccines")
		{
			vaccines.GET("", vaccineController.GetAllVaccines)
			vaccines.GET("/:id", vaccineController.GetVaccineByID)
			vaccines.POST("", vaccineController.CreateVaccine)
			vaccines.PUT("/:id", vaccineController.UpdateVaccine)

			// Removing a vaccine type is an administrative operation
			vaccinesAdmin := vaccines.Group("")
			vaccinesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				vaccinesAdmin.DELETE("/:id", vaccineController.DeleteVaccine)
			}
		}

		drives := authenticated.Group("/drives")
		{
			drives.GET("", driveController.GetAllDrives)
			drives.GET("/:id", driveController.GetDriveByID)
			drives.POST("", driveController.CreateDrive)
			drives.PUT("/:id", driveController.UpdateDrive)
			drives.DELETE("/:id", driveController.DeleteDrive)
		}

		records := authenticated.Group("/records")
		{
			records.GET("", recordController.GetAllRecords)
			records.GET("/:id", recordController.GetRecordByID)
			records.POST("", recordController.CreateRecord)
			records.PATCH("/:id", recordController.UpdateRecord)

			recordsAdmin := records.Group("")
			recordsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				recordsAdmin.DELETE("/:id", recordController.DeleteRecord)
			}
		}
	}
}
