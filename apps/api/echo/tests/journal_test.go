package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/zenkai/taiji/apps/api/echo"
	"github.com/zenkai/taiji/core/journal"
	"github.com/zenkai/taiji/core/user"
	aisvc "github.com/zenkai/taiji/services/ai"
	testutil "github.com/zenkai/taiji/tests"
)

func Test_journalApi_create(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"entry": "this field is required"}),
		},
		{
			name: "whitespace only", token: token, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, journal.NewEntry{Text: "   "}),
			wantData: marchallObj(t, map[string]string{"entry": "this field is required"}),
		},
		{name: "created", token: token, wantCode: http.StatusCreated, body: marchallObj(t, journal.NewEntry{Text: "Felt grounded after the warm-up."})},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/journal"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusCreated {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			var entry journal.Entry
			if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
				t.Fatalf("json.Unmarshal() failed! err %v", err)
			}
			if entry.ID == "" || entry.UserID != student.ID || entry.Text != "Felt grounded after the warm-up." {
				t.Errorf("failed! entry = %+v", entry)
			}
			if entry.AIResponse.Valid {
				t.Error("failed! feedback set without being requested")
			}
		})
	}
}

func Test_journalApi_list(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, usrRepo, "Rival", "rival1", "rival@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	empty := marchallList(t, []interface{}{}...)

	// entries are scoped per learner
	for _, text := range []string{"Day one.", "Day two."} {
		req, rec := newAuthRequest(http.MethodPost, "/api/journal", token, marchallObj(t, journal.NewEntry{Text: text}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seeding entry failed! code = %v", rec.Code)
		}
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "other learner sees nothing", token: getToken(t, other), wantCode: http.StatusOK, wantData: empty, extra: 0},
		{name: "own entries", token: token, wantCode: http.StatusOK, extra: 2},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/api/journal"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)

			if want, ok := tt.extra.(int); ok && want > 0 {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var entries []journal.Entry
				if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if len(entries) != want {
					t.Errorf("failed! len(entries) = %d; want %d", len(entries), want)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_journalApi_feedback(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	reflection := "My balance felt off today but the breathing helped."
	wantResponse, err := aisvc.NewServiceMock().GenerateFeedback(context.Background(), reflection)
	if err != nil {
		t.Fatalf("GenerateFeedback() failed, %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"entry": "this field is required"}),
		},
		{
			name: "feedback preview", token: token, wantCode: http.StatusOK,
			body:     marchallObj(t, echoapi.FeedbackRequest{Entry: reflection}),
			wantData: marchallObj(t, echoapi.FeedbackResponse{Response: wantResponse}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/journal/feedback"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_journalApi_entryFeedback(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, usrRepo, "Rival", "rival1", "rival@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	req, rec := newAuthRequest(http.MethodPost, "/api/journal", token, marchallObj(t, journal.NewEntry{Text: "The form is starting to flow."}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seeding entry failed! code = %v", rec.Code)
	}
	var entry journal.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", path: "/api/journal/" + entry.ID + "/feedback", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "unknown entry", path: "/api/journal/lol/feedback", token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "other learner's entry", path: "/api/journal/" + entry.ID + "/feedback", token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{name: "feedback stored", path: "/api/journal/" + entry.ID + "/feedback", token: token, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusOK {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			var fed journal.Entry
			if err := json.Unmarshal(rec.Body.Bytes(), &fed); err != nil {
				t.Fatalf("json.Unmarshal() failed! err %v", err)
			}
			if !fed.AIResponse.Valid || fed.AIResponse.String == "" {
				t.Error("failed! no feedback on response")
			}

			stored, err := journalRepo.GetEntry(context.Background(), student.ID, entry.ID)
			if err != nil {
				t.Fatalf("GetEntry() failed, %v", err)
			}
			if !stored.AIResponse.Valid || stored.AIResponse.String != fed.AIResponse.String {
				t.Error("failed! feedback not persisted")
			}
		})
	}
}
