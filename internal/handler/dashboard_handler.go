package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/sms-console/internal/auth"
	"github.com/kursadbilgin/sms-console/internal/domain"
	"github.com/kursadbilgin/sms-console/internal/observability"
	"github.com/kursadbilgin/sms-console/internal/web"
)

const (
	buttonStandard = "btn_api1"
	buttonSMPP     = "btn_api2"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.SendRequest) (domain.DispatchResult, error)
}

type DashboardHandler struct {
	dispatcher Dispatcher
	relay      *auth.Relay
}

func NewDashboardHandler(dispatcher Dispatcher, relay *auth.Relay) (*DashboardHandler, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if relay == nil {
		return nil, fmt.Errorf("result relay is required")
	}
	return &DashboardHandler{dispatcher: dispatcher, relay: relay}, nil
}

// RegisterDashboardRoutes mounts the dashboard behind guard.
func RegisterDashboardRoutes(router fiber.Router, h *DashboardHandler, guard fiber.Handler) {
	router.Get("/", guard, h.Show)
	router.Post("/", guard, h.Send)
}

// sendForm holds the fields of both provider forms; only the ones of the
// submitted form are filled.
type sendForm struct {
	Phone   string `form:"phone"`
	To      string `form:"to"`
	From    string `form:"from"`
	Message string `form:"message"`
	Gateway string `form:"gateway"`
}

func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	result, err := h.relay.Take(c)
	if err != nil {
		return err
	}

	activeTab := domain.ProviderStandard
	if result != nil && result.Provider.IsValid() {
		activeTab = result.Provider
	}

	return c.Render("dashboard", fiber.Map{
		"Username":  c.Locals(localsUsername),
		"Result":    result,
		"ActiveTab": activeTab.String(),
	}, web.Layout)
}

func (h *DashboardHandler) Send(c *fiber.Ctx) error {
	providerID, err := selectProvider(c)
	if err != nil {
		return toHTTPError(err)
	}

	var form sendForm
	if err := c.BodyParser(&form); err != nil {
		return toHTTPError(fmt.Errorf("%w: invalid send form", domain.ErrValidation))
	}

	ctx := observability.WithCorrelationID(c.UserContext(), requestCorrelationID(c))
	result, err := h.dispatcher.Dispatch(ctx, toSendRequest(providerID, form))
	if err != nil {
		return toHTTPError(err)
	}

	if err := h.relay.Store(c, result); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// selectProvider maps the pressed submit button to a provider. Exactly one
// button must be present.
func selectProvider(c *fiber.Ctx) (domain.ProviderID, error) {
	args := c.Request().PostArgs()
	standard := args.Has(buttonStandard)
	smpp := args.Has(buttonSMPP)

	switch {
	case standard && !smpp:
		return domain.ProviderStandard, nil
	case smpp && !standard:
		return domain.ProviderSMPP, nil
	}
	return "", fmt.Errorf("%w: exactly one provider action is required", domain.ErrUnknownProvider)
}

func toSendRequest(providerID domain.ProviderID, form sendForm) domain.SendRequest {
	switch providerID {
	case domain.ProviderStandard:
		return domain.SendRequest{
			Provider:  providerID,
			Recipient: form.Phone,
			Message:   form.Message,
		}
	case domain.ProviderSMPP:
		return domain.SendRequest{
			Provider:  providerID,
			Recipient: form.To,
			Sender:    form.From,
			Message:   form.Message,
			Gateway:   form.Gateway,
		}
	}
	return domain.SendRequest{Provider: providerID}
}

func requestCorrelationID(c *fiber.Ctx) string {
	if value := strings.TrimSpace(c.Get(fiber.HeaderXRequestID)); value != "" {
		return value
	}
	if value, ok := c.Locals("requestid").(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownProvider):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
