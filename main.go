package main

import (
	"classquiz/config"
	"classquiz/handlers"
	"classquiz/logger"
	"classquiz/models"
	"classquiz/routes"
	"classquiz/services"
	"classquiz/storage"
	"classquiz/store"
)

func main() {
	cfg := config.Load()
	log := logger.New("classquiz", cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.School{},
		&models.User{},
		&models.Class{},
		&models.ClassTeacher{},
		&models.ClassStudent{},
		&models.Subject{},
		&models.GameType{},
		&models.Game{},
		&models.Assignment{},
		&models.Question{},
		&models.StudentGameAttempt{},
		&models.ChallengeSubmission{},
		&models.Like{},
	)
	if err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	st := store.New(db, log)
	defer st.Close()

	images, err := storage.NewImages(cfg.UploadDir, log)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare upload directory")
	}

	authService := services.NewAuthService(st)
	gameService := services.NewGameService(st, images, log)
	subjectService := services.NewSubjectService(st)
	gameTypeService := services.NewGameTypeService(st)
	schoolService := services.NewSchoolService(st)
	roleService := services.NewRoleService(st)
	classService := services.NewClassService(st)
	userService := services.NewUserService(st)
	dashboardService := services.NewDashboardService(st)

	router := routes.Setup(&routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, images, log),
		Games:     handlers.NewGameHandler(gameService, images, log),
		Subjects:  handlers.NewSubjectHandler(subjectService, log),
		GameTypes: handlers.NewGameTypeHandler(gameTypeService, log),
		Schools:   handlers.NewSchoolHandler(schoolService, log),
		Roles:     handlers.NewRoleHandler(roleService, log),
		Classes:   handlers.NewClassHandler(classService, log),
		Users:     handlers.NewUserHandler(userService, log),
		Dashboard: handlers.NewDashboardHandler(dashboardService, log),
	}, log, cfg.UploadDir)

	addr := cfg.BindAddress + ":" + cfg.Port
	log.WithField("addr", addr).WithField("db_driver", cfg.DBDriver).Info("server starting")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
