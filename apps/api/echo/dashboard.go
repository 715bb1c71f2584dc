package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core/journal"
	"github.com/zenkai/taiji/core/progress"
	"github.com/zenkai/taiji/core/quiz"
)

type dashboardApi struct {
	progressSvc progress.Service
	journalSvc  journal.Service
	quizSvc     quiz.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{
		progressSvc: deps.ProgressSvc,
		journalSvc:  deps.JournalSvc,
		quizSvc:     deps.QuizSvc,
	}
	g.GET("/dashboard", api.retrieve, jwt)
}

// Dashboard is the learner home view.
type Dashboard struct {
	Progress        progress.Summary `json:"progress"`
	JournalCount    int              `json:"journal_count"`
	LatestQuizScore *float64         `json:"latest_quiz_score"`
}

func (api *dashboardApi) retrieve(ctx echo.Context) error {
	sess := getContextSession(ctx)
	reqCtx := ctx.Request().Context()

	entries, err := api.journalSvc.List(reqCtx, sess.UserID)
	if err != nil {
		return errors.Wrap(err, "loading journal entries")
	}
	// journaling is the activity that feeds the streak
	activity := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		activity = append(activity, entry.CreatedAt)
	}

	summary, err := api.progressSvc.Summary(reqCtx, sess.UserID, activity)
	if err != nil {
		return errors.Wrap(err, "loading progress summary")
	}

	dash := Dashboard{
		Progress:     summary,
		JournalCount: len(entries),
	}

	latest, err := api.quizSvc.LatestAttempt(reqCtx, sess.UserID)
	switch errors.Cause(err) {
	case nil:
		dash.LatestQuizScore = &latest.Score
	case quiz.ErrNoAttempts:
		// no quiz taken yet
	default:
		return errors.Wrap(err, "loading latest quiz attempt")
	}

	return ctx.JSON(http.StatusOK, dash)
}
