package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"

	"accountportal/internal/config"
	"accountportal/internal/database"
	"accountportal/internal/handlers"
	"accountportal/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	store := session.New()

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("db", db)
		c.Locals("store", store)
		return c.Next()
	})

	if !cfg.UseS3() {
		app.Static("/uploads", "./uploads")
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/csrf", handlers.GetCsrfToken)
	auth.Post("/register", middleware.CsrfMiddleware, handlers.Register)
	auth.Post("/login", middleware.CsrfMiddleware, handlers.Login)
	auth.Post("/logout", middleware.CsrfMiddleware, handlers.Logout)

	user := api.Group("/user", middleware.AuthMiddleware)
	user.Get("/me", handlers.GetCurrentUser)

	admin := api.Group("/admin", middleware.AuthMiddleware, middleware.AdminMiddleware)
	admin.Get("/users", handlers.GetAllUsers)
	admin.Post("/create-user", middleware.CsrfMiddleware, handlers.CreateUser)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}
