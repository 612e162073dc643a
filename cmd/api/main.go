package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/config"
	appHTTP "github.com/dokterku/presensi-backend-go/internal/handler/http"
	"github.com/dokterku/presensi-backend-go/internal/pkg/cron"
	"github.com/dokterku/presensi-backend-go/internal/pkg/database"
	"github.com/dokterku/presensi-backend-go/internal/pkg/jwt"
	"github.com/dokterku/presensi-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dokterku/presensi-backend-go/internal/service/attendance"
	authService "github.com/dokterku/presensi-backend-go/internal/service/auth"
	scheduleService "github.com/dokterku/presensi-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	workLocationRepo := postgresql.NewWorkLocationRepository(db)
	assignmentRepo := postgresql.NewScheduleAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	resolver := scheduleService.NewShiftWindowResolver(assignmentRepo, cfg.Attendance, loc)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		workLocationRepo,
		resolver,
		cfg.Attendance,
		loc,
	)
	authSvc := authService.NewAuthService(userRepo, jwtService)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Attendance)
	workLocationHandler := appHTTP.NewWorkLocationHandler(workLocationRepo)

	scheduler := cron.NewScheduler()
	integrityJobs := cron.NewIntegrityJobs(attendanceRepo, loc)
	integrityJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		workLocationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
