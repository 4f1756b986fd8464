package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostel-data/internal/config"
	"hostel-data/internal/database"
	"hostel-data/internal/domain"
	httpapi "hostel-data/internal/http"
	"hostel-data/internal/logger"
	"hostel-data/internal/repository"
	"hostel-data/internal/service"
	"hostel-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "hostel-data")
	if err != nil {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	// Session store: Redis when configured, in-process otherwise.
	var kv store.KV
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
	} else {
		log.Warn("Redis not configured, using in-memory session store")
		kv = store.NewMemoryKV()
	}

	// Storage: Postgres when enabled and reachable, in-memory fallback for
	// dev so the whole API stays usable without a database.
	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for hostel-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	}

	var (
		hostelsRepo    repository.HostelsRepository
		usersRepo      repository.UsersRepository
		roomsRepo      repository.RoomsRepository
		studentsRepo   repository.StudentsRepository
		transfersRepo  repository.TransfersRepository
		feesRepo       repository.FeesRepository
		attendanceRepo repository.AttendanceRepository
		complaintsRepo repository.ComplaintsRepository
		staffRepo      repository.StaffRepository
		visitorsRepo   repository.VisitorsRepository
		leavesRepo     repository.LeavesRepository
		inventoryRepo  repository.InventoryRepository
		reportsRepo    repository.ReportsRepository
		tenantResolver repository.TenantResolver
	)

	if db != nil {
		records := repository.NewPostgresRecordsRepository(db)
		hostelsRepo = repository.NewPostgresHostelsRepository(db)
		usersRepo = repository.NewPostgresUsersRepository(db)
		roomsRepo = repository.NewPostgresRoomsRepository(db)
		studentsRepo = repository.NewPostgresStudentsRepository(db)
		transfersRepo = repository.NewPostgresTransfersRepository(db)
		feesRepo = records
		attendanceRepo = records
		complaintsRepo = records
		staffRepo = records
		visitorsRepo = records
		leavesRepo = records
		inventoryRepo = records
		reportsRepo = records
		tenantResolver = repository.NewPostgresTenantResolver(db)
	} else {
		mem := repository.NewMemoryStore()
		hostelsRepo = mem
		usersRepo = mem
		roomsRepo = mem
		studentsRepo = mem
		transfersRepo = mem
		feesRepo = mem
		attendanceRepo = mem
		complaintsRepo = mem
		staffRepo = mem
		visitorsRepo = mem
		leavesRepo = mem
		inventoryRepo = mem
		reportsRepo = mem
		tenantResolver = mem
	}

	// Dev bootstrap: keep a usable SystemAdmin login unless disabled.
	if os.Getenv("SEED_SYSADMIN") != "false" {
		_, _ = usersRepo.UpsertUser(context.Background(), &domain.User{
			UserAccount:  "sysadmin",
			PasswordHash: service.HashPassword("ChangeMe123!"),
			Nickname:     sql.NullString{String: "SystemAdmin", Valid: true},
			Role:         domain.RoleSystemAdmin,
			Status:       "active",
		})
	}

	occupancy := service.NewOccupancyService(roomsRepo, log)
	rooms := service.NewRoomService(roomsRepo, studentsRepo, occupancy, log)
	students := service.NewStudentService(studentsRepo, roomsRepo, occupancy, log)
	transfers := service.NewTransferService(transfersRepo, studentsRepo, roomsRepo, occupancy, log)
	reports := service.NewReportService(reportsRepo, roomsRepo, log)
	auth := service.NewAuthService(usersRepo, kv, log)

	scope := &httpapi.ScopeResolver{Auth: auth, Resolver: tenantResolver}

	router := httpapi.NewRouter(log)
	router.RegisterRoutes(&httpapi.API{
		Auth:       httpapi.NewAuthHandler(auth),
		Hostels:    httpapi.NewHostelsHandler(hostelsRepo, scope),
		Rooms:      httpapi.NewRoomsHandler(rooms, scope),
		Students:   httpapi.NewStudentsHandler(students, scope),
		Transfers:  httpapi.NewTransfersHandler(transfers, scope),
		Fees:       httpapi.NewFeesHandler(feesRepo, scope),
		Attendance: httpapi.NewAttendanceHandler(attendanceRepo, scope),
		Complaints: httpapi.NewComplaintsHandler(complaintsRepo, scope),
		Staff:      httpapi.NewStaffHandler(staffRepo, scope),
		Visitors:   httpapi.NewVisitorsHandler(visitorsRepo, scope),
		Leaves:     httpapi.NewLeavesHandler(leavesRepo, scope),
		Inventory:  httpapi.NewInventoryHandler(inventoryRepo, scope),
		Reports:    httpapi.NewReportsHandler(reports, scope),
	})

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
