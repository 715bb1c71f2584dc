package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

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
	inmemdb "github.com/zenkai/taiji/storage/database/inmem"
)

var (
	conf *core.Config

	usrRepo      user.Repository
	progressRepo progress.Repository
	journalRepo  journal.Repository
	quizRepo     quiz.Repository
	profileRepo  billing.Repository

	paymentMock = paymentsvc.NewServiceMock()

	initAssetsOnce sync.Once

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) echoapi.Server {
	t.Helper()

	conf = newTestConfig()

	// set up DB & repos
	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	progressRepo = inmemdb.NewProgressRepository(db)
	journalRepo = inmemdb.NewJournalRepository(db)
	quizRepo = inmemdb.NewQuizRepository(db)
	profileRepo = inmemdb.NewProfileRepository(db)

	// set up services
	logger := logsvc.NewLoggerMock()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.SentMessages = nil // reset

	usrSvc := user.NewServiceMock(usrRepo, mailSvc, conf)
	progressSvc := progress.NewService(progressRepo)
	journalSvc := journal.NewService(journalRepo, aisvc.NewServiceMock())
	quizSvc := quiz.NewService(quizRepo)
	paymentMock = paymentsvc.NewServiceMock()
	billingSvc := billing.NewService(profileRepo, paymentMock)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	initAssetsOnce.Do(func() {
		core.ParseEmailTemplates(conf, logger)
		user.LoadCommonPasswords(conf, logger)
	})

	// set up server
	return echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			UserSvc:        usrSvc,
			ProgressSvc:    progressSvc,
			JournalSvc:     journalSvc,
			QuizSvc:        quizSvc,
			BillingSvc:     billingSvc,
			Webhook:        paymentMock,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:         true,
		Env:              "TEST",
		AppName:          "Taiji",
		SecretKey:        "secret",
		WorkDir:          core.Getwd(),
		DefaultFromEmail: mail.Address{Address: "noreply@test.taiji"},

		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,

		Server: core.ServerConfig{
			JWTExpirationDelta:        30 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := echoapi.GetUserClaims(usr)
	token, err := echoapi.GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	l1, ok1 := j1.([]interface{})
	l2, ok2 := j2.([]interface{})
	if ok1 && ok2 {
		return assert.ElementsMatch(t, l1, l2), nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
