package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/sms-console/internal/auth"
	"github.com/kursadbilgin/sms-console/internal/observability"
	"github.com/kursadbilgin/sms-console/internal/web"
	"go.uber.org/zap"
)

const invalidCredentialsMessage = "Invalid username or password"

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type AuthHandler struct {
	gate     *auth.Gate
	sessions *auth.Sessions
	validate *validator.Validate
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewAuthHandler(gate *auth.Gate, sessions *auth.Sessions, metrics *observability.Metrics, logger *zap.Logger) (*AuthHandler, error) {
	if gate == nil {
		return nil, fmt.Errorf("auth gate is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthHandler{
		gate:     gate,
		sessions: sessions,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
	}, nil
}

func RegisterAuthRoutes(router fiber.Router, h *AuthHandler) {
	router.Get("/login", h.LoginPage)
	router.Post("/login", h.Login)
	router.Get("/logout", h.Logout)
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok, err := h.sessions.IsAuthenticated(c); err != nil {
		return err
	} else if ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	return c.Render("login", fiber.Map{"Error": "", "Username": ""}, web.Layout)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid login form")
	}

	logger := observability.WithContextLogger(h.logger, c.UserContext())

	if err := h.validate.Struct(req); err != nil || !h.gate.Authenticate(req.Username, req.Password) {
		h.metrics.IncLoginAttempt("failure")
		logger.Warn("operator login rejected", zap.String("ip", c.IP()))

		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Error":    invalidCredentialsMessage,
			"Username": strings.TrimSpace(req.Username),
		}, web.Layout)
	}

	if err := h.sessions.Login(c, req.Username); err != nil {
		return err
	}

	h.metrics.IncLoginAttempt("success")
	logger.Info("operator logged in", zap.String("username", req.Username))

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusFound)
}
