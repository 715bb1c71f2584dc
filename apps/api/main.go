package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/zenkai/taiji/apps/api/echo"
	"github.com/zenkai/taiji/core"
	"github.com/zenkai/taiji/core/billing"
	"github.com/zenkai/taiji/core/journal"
	"github.com/zenkai/taiji/core/progress"
	"github.com/zenkai/taiji/core/quiz"
	"github.com/zenkai/taiji/core/user"
	aisvc "github.com/zenkai/taiji/services/ai"
	emailsvc "github.com/zenkai/taiji/services/email"
	logsvc "github.com/zenkai/taiji/services/logger"
	paymentsvc "github.com/zenkai/taiji/services/payment"
	"github.com/zenkai/taiji/storage/database"
	sqlxrepos "github.com/zenkai/taiji/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	dbx := sqlx.NewDb(db, conf.Database.Engine)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var feedbackGen journal.FeedbackGenerator
	if conf.OpenAI.APIKey != "" {
		feedbackGen, err = aisvc.NewOpenAIService(conf, logger)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up feedback generator: %v", err), err)
		}
	} else {
		logger.Warn("no OpenAI API key set; journal feedback uses canned responses")
		feedbackGen = aisvc.NewServiceMock()
	}

	stripeSvc := paymentsvc.NewStripeService(conf, logger)

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(dbx), mailSvc, conf)
	progressSvc := progress.NewService(sqlxrepos.NewProgressRepository(dbx))
	journalSvc := journal.NewService(sqlxrepos.NewJournalRepository(dbx), feedbackGen)
	quizSvc := quiz.NewService(sqlxrepos.NewQuizRepository(dbx))
	billingSvc := billing.NewService(sqlxrepos.NewProfileRepository(dbx), stripeSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)

	user.LoadCommonPasswords(conf, logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugAddr, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			UserSvc:     usrSvc,
			ProgressSvc: progressSvc,
			JournalSvc:  journalSvc,
			QuizSvc:     quizSvc,
			BillingSvc:  billingSvc,
			Webhook:     stripeSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
