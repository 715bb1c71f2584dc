package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core/billing"
	"github.com/zenkai/taiji/core/course"
	"github.com/zenkai/taiji/core/progress"
)

type courseApi struct {
	billingSvc  billing.Service
	progressSvc progress.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{
		billingSvc:  deps.BillingSvc,
		progressSvc: deps.ProgressSvc,
	}

	cg := g.Group("/course", jwt)
	cg.GET("/units", api.listUnits)
	cg.GET("/units/:ordinal", api.retrieveUnit)
	cg.POST("/units/:ordinal/complete", api.completeUnit)
}

// UnitListItem is a catalog unit annotated for the current learner.
type UnitListItem struct {
	course.Unit
	Accessible bool `json:"accessible"`
	Completed  bool `json:"completed"`
}

func (api *courseApi) listUnits(ctx echo.Context) error {
	sess := getContextSession(ctx)

	ent, err := api.billingSvc.Entitlement(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "loading entitlement")
	}
	events, err := api.progressSvc.List(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "loading progress")
	}
	completed := make(map[int]bool, len(events))
	for _, ev := range events {
		if ev.Completed {
			completed[ev.UnitOrdinal] = true
		}
	}

	units := course.Catalog()
	items := make([]UnitListItem, 0, len(units))
	for _, unit := range units {
		items = append(items, UnitListItem{
			Unit:       unit,
			Accessible: course.CanAccess(unit, ent, false),
			Completed:  completed[unit.Ordinal],
		})
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *courseApi) retrieveUnit(ctx echo.Context) error {
	unit, err := api.getUnit(ctx)
	if err != nil {
		return err
	}

	sess := getContextSession(ctx)
	ent, err := api.billingSvc.Entitlement(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "loading entitlement")
	}
	if !course.CanAccess(unit, ent, false) {
		return errPremiumRequired
	}
	return ctx.JSON(http.StatusOK, unit)
}

func (api *courseApi) completeUnit(ctx echo.Context) error {
	unit, err := api.getUnit(ctx)
	if err != nil {
		return err
	}

	sess := getContextSession(ctx)
	ent, err := api.billingSvc.Entitlement(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "loading entitlement")
	}
	if !course.CanAccess(unit, ent, false) {
		return errPremiumRequired
	}

	event, err := api.progressSvc.Complete(ctx.Request().Context(), sess.UserID, unit.Ordinal)
	if err != nil {
		return errors.Wrap(err, "completing unit")
	}
	return ctx.JSON(http.StatusOK, event)
}

func (api *courseApi) getUnit(ctx echo.Context) (course.Unit, error) {
	ordinal, err := strconv.Atoi(ctx.Param("ordinal"))
	if err != nil {
		return course.Unit{}, errHttpNotFound
	}
	unit, err := course.Get(ordinal)
	if err != nil {
		return course.Unit{}, errHttpNotFound
	}
	return unit, nil
}
