package echoapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core"
	"github.com/zenkai/taiji/core/billing"
	paymentsvc "github.com/zenkai/taiji/services/payment"
)

type billingApi struct {
	svc     billing.Service
	webhook WebhookVerifier
	logger  core.Logger
}

func registerBillingAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := billingApi{
		svc:     deps.BillingSvc,
		webhook: deps.Webhook,
		logger:  deps.Logger,
	}

	bg := g.Group("/billing")
	// the webhook is authenticated by its signature, not a JWT
	bg.POST("/webhook", api.handleWebhook)

	ag := bg.Group("", jwt)
	ag.GET("/profile", api.profile)
	ag.POST("/checkout-session", api.createCheckoutSession)
}

func (api *billingApi) profile(ctx echo.Context) error {
	sess := getContextSession(ctx)
	profile, err := api.svc.Profile(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "loading billing profile")
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *billingApi) createCheckoutSession(ctx echo.Context) error {
	sess := getContextSession(ctx)
	checkout, err := api.svc.CreateCheckoutSession(ctx.Request().Context(), sess.UserID, sess.Email)
	if err != nil {
		return errors.Wrap(err, "creating checkout session")
	}
	return ctx.JSON(http.StatusCreated, checkout)
}

func (api *billingApi) handleWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reading payload")
	}

	userID, err := api.webhook.CompletedCheckoutUser(payload, ctx.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Cause(err) == paymentsvc.ErrUnhandledEvent {
			// acknowledged but nothing to do
			return ctx.NoContent(http.StatusOK)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid webhook payload")
	}

	if _, err = api.svc.GrantPremium(ctx.Request().Context(), userID); err != nil {
		return errors.Wrap(err, "granting premium")
	}
	api.logger.Info("premium granted via checkout for user " + userID)
	return ctx.NoContent(http.StatusOK)
}
