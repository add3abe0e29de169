package handler

import (
	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/http/middleware"
	"adoptapi/internal/model"
	"adoptapi/internal/repository"
	"adoptapi/internal/service"
)

// DefaultMockQuantity is used by the mocks endpoints when no quantity is given.
const DefaultMockQuantity = 100

// DefaultMaxMockQuantity bounds the quantities accepted by the mocks endpoints.
const DefaultMaxMockQuantity = 10000

// Deps are the collaborators the routes need.
type Deps struct {
	Store     Pinger
	Pets      repository.CRUD[model.Pet]
	Users     repository.CRUD[model.User]
	Adoptions repository.CRUD[model.Adoption]
	Seed      service.SeedService
	Media     service.MediaService
	Auth      service.AuthService
	Tokens    middleware.TokenParser

	MockQuantity    int
	MaxMockQuantity int
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.MaxMockQuantity <= 0 {
		d.MaxMockQuantity = DefaultMaxMockQuantity
	}
	if d.MockQuantity <= 0 {
		d.MockQuantity = DefaultMockQuantity
	}
	if d.MockQuantity > d.MaxMockQuantity {
		d.MockQuantity = d.MaxMockQuantity
	}

	app.Get("/health", HealthCheck(d.Store))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/status", Status())

	pets := api.Group("/pets")
	pets.Get("/", ListRecords(d.Pets))
	pets.Post("/", CreateRecord(d.Pets, decodePet))
	pets.Post("/withimage", CreatePetWithImage(d.Media))
	pets.Get("/:pid", GetRecord(d.Pets, "pid"))
	pets.Put("/:pid", UpdateRecord(d.Pets, "pid"))
	pets.Delete("/:pid", DeleteRecord(d.Pets, "pid"))
	pets.Get("/:pid/image", GetPetImage(d.Media))
	pets.Post("/:pid/image", AttachPetImage(d.Media))

	users := api.Group("/users")
	users.Get("/", ListRecords(d.Users))
	users.Post("/", CreateRecord(d.Users, decodeUser))
	users.Get("/:uid", middleware.Auth(d.Tokens), GetUser(d.Users))
	users.Put("/:uid", UpdateRecord(d.Users, "uid"))
	users.Delete("/:uid", DeleteRecord(d.Users, "uid"))
	users.Post("/:uid/documents", AddUserDocuments(d.Media))

	adoptions := api.Group("/adoptions")
	adoptions.Get("/", ListRecords(d.Adoptions))
	adoptions.Post("/", CreateRecord(d.Adoptions, bindBody[model.Adoption]))
	adoptions.Get("/:aid", GetRecord(d.Adoptions, "aid"))
	adoptions.Put("/:aid", UpdateRecord(d.Adoptions, "aid"))
	adoptions.Delete("/:aid", DeleteRecord(d.Adoptions, "aid"))

	mocks := api.Group("/mocks")
	mocks.Get("/mockingpets/:quantity?", MockPets(d.Seed, d.MockQuantity, d.MaxMockQuantity))
	mocks.Get("/mockingusers/:quantity?", MockUsers(d.Seed, d.MockQuantity, d.MaxMockQuantity))
	mocks.Post("/generateData", GenerateData(d.Seed, d.MaxMockQuantity))
	mocks.Post("/generate-data", GenerateData(d.Seed, d.MaxMockQuantity))

	api.Post("/sessions/login", Login(d.Auth))
}
