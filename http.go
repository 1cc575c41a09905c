package userdir

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// UserController serves the user directory routes
type UserController struct {
	Logger Logger
	Users  Users
	Auther *Auther

	// Provider resolves the identities attached by the auth gate
	Provider IdentityProvider
}

type UserControllerOption func(*UserController) *UserController

func WithControllerLogger(logger Logger) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Logger = logger
		return c
	}
}

func WithUsers(users Users) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Users = users
		return c
	}
}

func WithAuther(auther *Auther) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Auther = auther
		return c
	}
}

func WithProvider(provider IdentityProvider) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Provider = provider
		return c
	}
}

func NewUserController(opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil {
		panic("Missing Users repository in user controller...")
	}

	if c.Auther == nil {
		panic("Missing Auther in user controller...")
	}

	if c.Provider == nil {
		panic("Missing IdentityProvider in user controller...")
	}

	return c
}

// RegisterRoutes composes the controller and its middleware at route
// registration time. Only the directory listing is gated, and it
// requires the VIP tier.
func RegisterRoutes(app fiber.Router, opts ...UserControllerOption) *UserController {
	controller := NewUserController(opts...)

	authenticated := TokenRequired(
		controller.Auther.TokenService(),
		controller.Provider,
		controller.Logger,
	)

	app.Get("/ping", controller.Ping)

	app.Get("/users",
		authenticated,
		AccountTypeRequired(AccountVIP, controller.Logger),
		controller.ListUsers,
	)

	app.Get("/user/:id", controller.GetUser)
	app.Post("/user", controller.CreateUser)
	app.Post("/login", controller.Login)

	return controller
}

func (a *UserController) Ping(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// ListUsers returns every user joined with its account tier
func (a *UserController) ListUsers(c *fiber.Ctx) error {
	records, err := a.Users.List(c.UserContext())
	if err != nil {
		return a.resolveError(c, err)
	}

	if records == nil {
		records = []User{}
	}

	return c.JSON(records)
}

// GetUser is public, it requires no gate
func (a *UserController) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return a.resolveError(c, ErrUserNotFound)
	}

	record, err := a.Users.GetByID(c.UserContext(), id)
	if err != nil {
		return a.resolveError(c, err)
	}

	return c.JSON(record)
}

// CreateUserRequest payload
type CreateUserRequest struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	AccountType AccountType `json:"account_type"`
}

// CreateUser hashes the submitted password and inserts the user
// linked to the requested account tier
func (a *UserController) CreateUser(c *fiber.Ctx) error {
	payload := &CreateUserRequest{}
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Warn("create user body parse failed", "error", err)
		return a.resolveError(c, ErrUserNotCreated)
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return a.resolveError(c, err)
	}

	record := &User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hash,
	}

	if err := a.Users.Create(c.UserContext(), record, payload.AccountType); err != nil {
		return a.resolveError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse payload
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges email/password for an access token. Failures are
// uniform regardless of cause.
func (a *UserController) Login(c *fiber.Ctx) error {
	payload := &LoginRequest{}
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Warn("login body parse failed", "error", err)
		return a.resolveError(c, ErrInvalidCredentials)
	}

	token, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return a.resolveError(c, err)
	}

	return c.JSON(LoginResponse{AccessToken: token})
}

// resolveError maps domain failures onto the HTTP surface in one
// place. Client-facing bodies stay minimal, diagnostics go to the log.
func (a *UserController) resolveError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	case errors.Is(err, ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid credentials",
		})
	default:
		a.Logger.Error("request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
