package api

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ardlogistics/backoffice/internal/authz"
	"github.com/ardlogistics/backoffice/internal/events"
	"github.com/ardlogistics/backoffice/internal/models"
)

type Server struct {
	db        *sql.DB
	gate      *authz.Gate
	publisher *events.Publisher
}

func NewServer(db *sql.DB, gate *authz.Gate, publisher *events.Publisher) *Server {
	return &Server{
		db:        db,
		gate:      gate,
		publisher: publisher,
	}
}

func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Freight Back-Office v1.0",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Employee-ID,X-Request-ID",
	}))

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api", s.Authenticate())

	roleMgmt := api.Group("/modules", s.RequireModule(models.ModuleRoleManagement))
	roleMgmt.Get("/", s.handleListModules)
	roleMgmt.Put("/:code/permissions", s.handleSetPermission)

	employees := api.Group("/employees", s.RequireModule(models.ModuleEmployees))
	employees.Post("/", s.handleCreateEmployee)
	employees.Get("/:id", s.handleGetEmployee)
	employees.Get("/", s.handleListEmployees)
	employees.Put("/:id/account-status", s.handleSetAccountStatus)
	employees.Delete("/:id", s.handleDeleteEmployee)

	statuses := api.Group("/statuses", s.RequireModule(models.ModuleStatusMaintenance))
	statuses.Get("/packages", s.handleListPackageStatuses)
	statuses.Post("/packages", s.handleCreatePackageStatus)
	statuses.Get("/containers", s.handleListContainerStatuses)
	statuses.Post("/containers", s.handleCreateContainerStatus)

	packages := api.Group("/packages", s.RequireModule(models.ModulePackages))
	packages.Post("/", s.handleCreatePackage)
	packages.Get("/", s.handleListPackages)
	packages.Get("/:tracking", s.handleGetPackage)
	packages.Put("/:tracking/status", s.handleUpdatePackageStatus)
	packages.Get("/:tracking/history", s.handlePackageHistory)
	packages.Put("/:tracking/container", s.handleAssignContainer)
	packages.Put("/:tracking/batch", s.handleAssignBatch)

	containers := api.Group("/containers", s.RequireModule(models.ModuleContainers))
	containers.Post("/", s.handleCreateContainer)
	containers.Get("/:id", s.handleGetContainer)
	containers.Get("/:id/packages", s.handleContainerPackages)
	containers.Put("/:id/status", s.handleUpdateContainerStatus)
	containers.Get("/:id/history", s.handleContainerHistory)
	containers.Post("/:id/refresh-totals", s.handleRefreshContainerTotals)
	containers.Put("/:id/documents", s.handleSetContainerDocuments)

	batches := api.Group("/batches", s.RequireModule(models.ModuleBatches))
	batches.Post("/", s.handleCreateBatch)
	batches.Get("/:id", s.handleGetBatch)
	batches.Post("/:id/unlock", s.handleUnlockBatch)
	batches.Post("/:id/lock", s.handleLockBatch)

	payments := api.Group("/payments", s.RequireModule(models.ModulePayments))
	payments.Post("/", s.handleRecordPayment)
	payments.Get("/:tracking", s.handleListPayments)
	payments.Get("/:tracking/balance", s.handlePackageBalance)

	messages := api.Group("/messages", s.RequireModule(models.ModuleMessages))
	messages.Post("/", s.handleCreateMessage)
	messages.Get("/inbox", s.handleInbox)
	messages.Put("/:id/read", s.handleMarkRead)
	messages.Put("/:id/star", s.handleToggleStar)
	messages.Delete("/:id", s.handleDeleteMessage)

	return app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	if err := s.db.PingContext(c.Context()); err != nil {
		return internalErrorResponse(c)
	}
	return successResponse(c, "ok", nil)
}
