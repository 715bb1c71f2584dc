package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	echoapi "github.com/zenkai/taiji/apps/api/echo"
	"github.com/zenkai/taiji/core/course"
	"github.com/zenkai/taiji/core/journal"
	"github.com/zenkai/taiji/core/progress"
	"github.com/zenkai/taiji/core/user"
	testutil "github.com/zenkai/taiji/tests"
)

func Test_dashboardApi_retrieve(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	t.Run("Auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/api/dashboard")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("fresh learner", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echoapi.Dashboard{
				Progress: progress.Summary{TotalUnits: course.Count(), NextUnit: 1},
			}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/dashboard", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("after some practice", func(t *testing.T) {
		ctx := context.Background()
		now := time.Now().UTC()

		// completed units 1 & 2; completions alone never feed the streak
		for _, ordinal := range []int{1, 2} {
			_, err := progressRepo.UpsertEvent(ctx, progress.Event{
				UserID:      student.ID,
				UnitOrdinal: ordinal,
				Completed:   true,
				CompletedAt: now,
			})
			if err != nil {
				t.Fatalf("UpsertEvent() failed, %v", err)
			}
		}

		req, rec := newAuthRequest(http.MethodGet, "/api/dashboard", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v", rec.Code)
		}
		var dash echoapi.Dashboard
		if err := json.Unmarshal(rec.Body.Bytes(), &dash); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if dash.Progress.StreakDays != 0 {
			t.Errorf("failed! streak without journaling = %d; want 0", dash.Progress.StreakDays)
		}

		// journaled today and yesterday for a 2 day streak
		entries := []journal.Entry{
			{ID: "e1", UserID: student.ID, Text: "Flow.", CreatedAt: now},
			{ID: "e2", UserID: student.ID, Text: "Rooted.", CreatedAt: now.AddDate(0, 0, -1)},
		}
		for _, entry := range entries {
			if _, err := journalRepo.CreateEntry(ctx, entry); err != nil {
				t.Fatalf("CreateEntry() failed, %v", err)
			}
		}

		req, rec = newAuthRequest(http.MethodPost, "/api/quiz/attempts", token,
			marchallObj(t, echoapi.SubmitRequest{Answers: map[int]int{1: 1, 2: 2, 3: 1, 4: 2, 5: 2}}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("submitting quiz failed! code = %v", rec.Code)
		}

		req, rec = newAuthRequest(http.MethodGet, "/api/dashboard", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v", rec.Code)
		}

		if err := json.Unmarshal(rec.Body.Bytes(), &dash); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if dash.Progress.CompletedCount != 2 || dash.Progress.Percentage != 40 || dash.Progress.NextUnit != 3 {
			t.Errorf("failed! progress = %+v", dash.Progress)
		}
		if dash.Progress.StreakDays != 2 {
			t.Errorf("failed! streak = %d; want 2", dash.Progress.StreakDays)
		}
		if dash.JournalCount != 2 {
			t.Errorf("failed! journal_count = %d; want 2", dash.JournalCount)
		}
		if dash.LatestQuizScore == nil || *dash.LatestQuizScore != 100 {
			t.Errorf("failed! latest_quiz_score = %v; want 100", dash.LatestQuizScore)
		}
	})
}
