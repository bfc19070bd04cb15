package routes

import (
	"net/http"

	"classquiz/handlers"
	"classquiz/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Games     *handlers.GameHandler
	Subjects  *handlers.SubjectHandler
	GameTypes *handlers.GameTypeHandler
	Schools   *handlers.SchoolHandler
	Roles     *handlers.RoleHandler
	Classes   *handlers.ClassHandler
	Users     *handlers.UserHandler
	Dashboard *handlers.DashboardHandler
}

// Setup builds the router with middleware, static uploads and all API routes.
func Setup(h *Handlers, log *logrus.Logger, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	r.Static("/uploads", uploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)

	r.POST("/games", h.Games.CreateGame)
	r.GET("/games/:id", h.Games.GetGame)
	r.PUT("/games/:id", h.Games.UpdateGame)
	r.DELETE("/games/:id", h.Games.DeleteGame)
	r.GET("/search/games", h.Games.SearchGames)
	r.GET("/teachers/:teacherId/questions/count", h.Games.CountTeacherQuestions)

	r.GET("/subjects", h.Subjects.List)
	r.POST("/subjects", h.Subjects.Create)
	r.PUT("/subjects/:id", h.Subjects.Update)
	r.DELETE("/subjects/:id", h.Subjects.Delete)

	r.GET("/game-types", h.GameTypes.List)
	r.POST("/game-types", h.GameTypes.Create)
	r.PUT("/game-types/:id", h.GameTypes.Update)
	r.DELETE("/game-types/:id", h.GameTypes.Delete)

	r.GET("/schools", h.Schools.List)
	r.POST("/schools", h.Schools.Create)
	r.PUT("/schools/:id", h.Schools.Update)
	r.DELETE("/schools/:id", h.Schools.Delete)

	r.GET("/roles", h.Roles.List)
	r.POST("/roles", h.Roles.Create)
	r.PUT("/roles/:id", h.Roles.Update)
	r.DELETE("/roles/:id", h.Roles.Delete)

	r.GET("/classes", h.Classes.List)
	r.POST("/classes", h.Classes.Create)
	r.PUT("/classes/:classId", h.Classes.Update)
	r.DELETE("/classes/:classId", h.Classes.Delete)
	r.GET("/classes/:classId/students", h.Classes.Students)
	r.POST("/classes/:classId/students", h.Classes.AddStudent)
	r.GET("/classes/:classId/summary", h.Classes.Summary)
	r.GET("/classes/:classId/challenge-stats", h.Classes.ChallengeStats)
	r.GET("/classes/:classId/accuracy-trend", h.Classes.AccuracyTrend)
	r.GET("/classes/:classId/challenges", h.Classes.Challenges)
	r.GET("/grade-levels", h.Classes.GradeLevels)

	r.GET("/users", h.Users.List)
	r.POST("/users", h.Users.Create)
	r.GET("/users/:id", h.Users.Get)
	r.PUT("/users/:id", h.Users.Update)
	r.DELETE("/users/:id", h.Users.Delete)
	r.GET("/settings/:userId", h.Users.Settings)
	r.GET("/students/:id", h.Users.GetStudent)

	r.GET("/dashboard", h.Dashboard.Overview)
	r.GET("/dashboard/recent-games", h.Dashboard.RecentGames)
	r.GET("/dashboard/game-distribution", h.Dashboard.GameDistribution)

	return r
}
