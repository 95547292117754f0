package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/tallersur/agenda-api/internal/config"
	"github.com/tallersur/agenda-api/internal/events"
	"github.com/tallersur/agenda-api/internal/handlers"
	"github.com/tallersur/agenda-api/internal/middleware"
	"github.com/tallersur/agenda-api/internal/session"
	"github.com/tallersur/agenda-api/internal/timezone"
	ucAgenda "github.com/tallersur/agenda-api/internal/usecase/agenda"
	"github.com/tallersur/agenda-api/internal/upstream"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config, log *zap.Logger, rdb *redis.Client) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	loc := timezone.Location(cfg.Timezone)
	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamToken)
	store := session.NewRedisStore(rdb, time.Duration(cfg.SnapshotTTLMin)*time.Minute, log)
	dispatcher := events.NewDispatcher(log)

	// ======================================================
	// USE CASES — AGENDA
	// ======================================================
	loadDayIntervalsUC := ucAgenda.NewLoadDayIntervals(
		client,
		store,
		loc,
		log,
		dispatcher,
	)

	checkSlotUC := ucAgenda.NewCheckSlot(
		loadDayIntervalsUC,
		loc,
		dispatcher,
	)

	bookCitaUC := ucAgenda.NewBookCita(
		checkSlotUC,
		client,
		loc,
		dispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	agendaHandler := handlers.NewAgendaHandler(
		loadDayIntervalsUC,
		checkSlotUC,
		loc,
		cfg.WorkdayStart,
		cfg.WorkdayEnd,
	)

	citasHandler := handlers.NewCitasHandler(bookCitaUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.RequestIDMiddleware())

	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// AGENDA
		// ------------------------------
		secured.GET("/agenda/:empleadoId/intervalos", agendaHandler.ListIntervals)
		secured.GET("/agenda/:empleadoId/libres", agendaHandler.ListFreeSlots)
		secured.POST("/agenda/verificar", agendaHandler.CheckSlot)

		// ------------------------------
		// CITAS (pasan por el backend)
		// ------------------------------
		secured.POST("/citas", citasHandler.Create)
		secured.POST("/citas/:id/reprogramar", citasHandler.Reprogramar)
	}
}
