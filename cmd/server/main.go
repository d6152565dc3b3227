package main

import (
	"log"
	"os"
	"runtime"

	"backend-reservation/internal/config"
	"backend-reservation/internal/http/handler"
	"backend-reservation/internal/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
	})

	config.LoadEnv()
	config.InitRedis()
	config.InitDB()
	defer config.CloseDB()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Reservation API up",
		})
	})

	app.Post("/auth/login", handler.Login)

	// Public catalog
	app.Get("/companies/", handler.GetAllCompanies)
	app.Get("/companies/paginate", handler.GetAllCompaniesPagination)
	app.Get("/companies/:id", handler.GetCompanyByID)
	app.Get("/branches/", handler.GetAllBranches)
	app.Get("/branches/:id", handler.GetBranchByID)

	// Live status display
	app.Get("/ws/status/:companyId/:branchId", websocket.New(handler.StatusWebSocket))

	// Everything below requires a bearer token
	api := app.Group("/", middleware.JWTAuth())

	// Auth
	api.Post("/auth/logout", handler.Logout)
	api.Get("/users/me", handler.GetMe)

	// Reservations
	api.Post("/reservations", handler.CreateReservation)
	api.Get("/reservations", handler.GetReservations)
	api.Get("/reservations/:companyId/:branchId/summary", handler.GetWaitingStatusSummary)
	api.Get("/reservations/:id", handler.GetReservationByID)
	api.Delete("/reservations/:id", handler.CancelReservation)

	// ===== STAFF ROUTES =====
	api.Post("/reservations/call-next", middleware.RoleAuth("admin", "staff"), handler.CallNextReservation)
	api.Put("/reservations/:id/status", middleware.RoleAuth("admin", "staff"), handler.UpdateReservationStatus)

	// ===== ADMIN ROUTES =====
	// Users
	api.Get("/users", middleware.RoleAuth("admin"), handler.GetAllUsers)
	api.Post("/users", middleware.RoleAuth("admin"), handler.CreateUser)
	api.Put("/users/:id", middleware.RoleAuth("admin"), handler.UpdateUser)
	api.Delete("/users/:id", middleware.RoleAuth("admin"), handler.DeleteUser)

	// Companies
	api.Post("/companies", middleware.RoleAuth("admin"), handler.CreateCompany)
	api.Put("/companies/:id", middleware.RoleAuth("admin"), handler.UpdateCompany)
	api.Delete("/companies/:id", middleware.RoleAuth("admin"), handler.DeleteCompany)

	// Branches
	api.Post("/branches", middleware.RoleAuth("admin"), handler.CreateBranch)
	api.Put("/branches/:id", middleware.RoleAuth("admin"), handler.UpdateBranch)
	api.Delete("/branches/:id", middleware.RoleAuth("admin"), handler.DeleteBranch)

	addr := os.Getenv("APP_HOST") + ":" + config.GetEnv("APP_PORT", "8080")
	log.Println("Server listening on", addr)
	log.Fatal(app.Listen(addr))
}
