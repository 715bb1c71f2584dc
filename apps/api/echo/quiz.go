package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core"
	"github.com/zenkai/taiji/core/quiz"
)

type quizApi struct {
	svc quiz.Service
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := quizApi{svc: deps.QuizSvc}

	qg := g.Group("/quiz", jwt)
	qg.GET("/questions", api.listQuestions)
	qg.GET("/session", api.session)
	qg.POST("/session/answer", api.answer)
	qg.POST("/session/next", api.next)
	qg.POST("/session/previous", api.previous)
	qg.POST("/session/reset", api.reset)
	qg.POST("/attempts", api.submit)
	qg.GET("/attempts", api.listAttempts)
	qg.GET("/attempts/latest", api.latestAttempt)
}

type (
	AnswerRequest struct {
		Option int `json:"option"`
	}

	SubmitRequest struct {
		Answers map[int]int `json:"answers"`
	}

	// SessionResponse never leaks correct answers of an in-progress quiz.
	SessionResponse struct {
		Session quiz.Session  `json:"session"`
		Attempt *quiz.Attempt `json:"attempt,omitempty"`
		Result  *quiz.Result  `json:"result,omitempty"`
	}

	AttemptResponse struct {
		Attempt quiz.Attempt `json:"attempt"`
		Result  quiz.Result  `json:"result"`
	}
)

func (api *quizApi) listQuestions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, quiz.Questions())
}

func (api *quizApi) session(ctx echo.Context) error {
	sess := getContextSession(ctx)
	qs, err := api.svc.Session(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "loading quiz session")
	}
	return ctx.JSON(http.StatusOK, api.sessionResponse(qs, nil))
}

func (api *quizApi) answer(ctx echo.Context) error {
	var data AnswerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnswerRequest")
	}

	sess := getContextSession(ctx)
	qs, err := api.svc.Answer(ctx.Request().Context(), sess.UserID, data.Option)
	if err != nil {
		switch errors.Cause(err) {
		case quiz.ErrInvalidOption, quiz.ErrSessionCompleted:
			return core.NewValidationError(err, core.FieldError{Field: "option", Error: err.Error()})
		}
		return errors.Wrap(err, "answering question")
	}
	return ctx.JSON(http.StatusOK, api.sessionResponse(qs, nil))
}

func (api *quizApi) next(ctx echo.Context) error {
	sess := getContextSession(ctx)
	qs, attempt, err := api.svc.Next(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "advancing quiz session")
	}
	return ctx.JSON(http.StatusOK, api.sessionResponse(qs, attempt))
}

func (api *quizApi) previous(ctx echo.Context) error {
	sess := getContextSession(ctx)
	qs, err := api.svc.Previous(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "rewinding quiz session")
	}
	return ctx.JSON(http.StatusOK, api.sessionResponse(qs, nil))
}

func (api *quizApi) reset(ctx echo.Context) error {
	sess := getContextSession(ctx)
	qs, err := api.svc.Reset(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "resetting quiz session")
	}
	return ctx.JSON(http.StatusOK, api.sessionResponse(qs, nil))
}

func (api *quizApi) submit(ctx echo.Context) error {
	var data SubmitRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitRequest")
	}

	sess := getContextSession(ctx)
	attempt, result, err := api.svc.Submit(ctx.Request().Context(), sess.UserID, data.Answers)
	if err != nil {
		return errors.Wrap(err, "submitting quiz attempt")
	}
	return ctx.JSON(http.StatusCreated, AttemptResponse{Attempt: attempt, Result: result})
}

func (api *quizApi) listAttempts(ctx echo.Context) error {
	sess := getContextSession(ctx)
	attempts, err := api.svc.Attempts(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "listing quiz attempts")
	}
	if attempts == nil {
		attempts = []quiz.Attempt{}
	}
	return ctx.JSON(http.StatusOK, attempts)
}

func (api *quizApi) latestAttempt(ctx echo.Context) error {
	sess := getContextSession(ctx)
	attempt, err := api.svc.LatestAttempt(ctx.Request().Context(), sess.UserID)
	if err != nil {
		if errors.Cause(err) == quiz.ErrNoAttempts {
			return errHttpNotFound
		}
		return errors.Wrap(err, "loading latest quiz attempt")
	}
	return ctx.JSON(http.StatusOK, AttemptResponse{Attempt: attempt, Result: api.svc.Grade(attempt.Answers)})
}

// sessionResponse grades completed sessions so the review can be shown.
func (api *quizApi) sessionResponse(qs quiz.Session, attempt *quiz.Attempt) SessionResponse {
	resp := SessionResponse{Session: qs, Attempt: attempt}
	if qs.Status == quiz.StatusCompleted {
		result := api.svc.Grade(qs.Answers)
		resp.Result = &result
	}
	return resp
}
