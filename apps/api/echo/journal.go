package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core"
	"github.com/zenkai/taiji/core/journal"
)

type journalApi struct {
	svc      journal.Service
	validate *validator.Validate
}

func registerJournalAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := journalApi{
		svc:      deps.JournalSvc,
		validate: deps.Validate,
	}

	jg := g.Group("/journal", jwt)
	jg.POST("", api.create)
	jg.GET("", api.list)
	jg.POST("/feedback", api.feedback)
	jg.POST("/:id/feedback", api.entryFeedback)
}

type (
	FeedbackRequest struct {
		Entry string `json:"entry" validate:"required"`
	}

	FeedbackResponse struct {
		Response string `json:"response"`
	}
)

func (fr *FeedbackRequest) Validate(validate *validator.Validate) error {
	fr.Entry = core.CleanString(fr.Entry)
	return validate.Struct(fr)
}

func (api *journalApi) create(ctx echo.Context) error {
	var data journal.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess := getContextSession(ctx)
	entry, err := api.svc.Create(ctx.Request().Context(), sess.UserID, data)
	if err != nil {
		return errors.Wrap(err, "creating journal entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *journalApi) list(ctx echo.Context) error {
	sess := getContextSession(ctx)
	entries, err := api.svc.List(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "listing journal entries")
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

// feedback generates feedback for a reflection that has not been saved yet.
func (api *journalApi) feedback(ctx echo.Context) error {
	var data FeedbackRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeedbackRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	response, err := api.svc.GenerateFeedback(ctx.Request().Context(), data.Entry)
	if err != nil {
		return errors.Wrap(err, "generating feedback")
	}
	return ctx.JSON(http.StatusOK, FeedbackResponse{Response: response})
}

// entryFeedback generates feedback for a saved entry and stores it there.
func (api *journalApi) entryFeedback(ctx echo.Context) error {
	sess := getContextSession(ctx)

	entry, err := api.svc.Feedback(ctx.Request().Context(), sess.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == journal.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "generating entry feedback")
	}
	return ctx.JSON(http.StatusOK, entry)
}
