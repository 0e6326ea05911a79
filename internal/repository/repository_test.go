package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lewis-Dimun/green-fashion-score/internal/database"
	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := NewUserRepo(db).Create(context.Background(), email, "Secret123!", "Test User", models.RoleUser)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestPillar(t *testing.T, db *gorm.DB, name string, maxPoints, weight float64) *models.Pillar {
	t.Helper()
	pillar := &models.Pillar{Name: name, MaxPoints: maxPoints, Weight: weight}
	if err := NewPillarRepo(db).Create(context.Background(), pillar); err != nil {
		t.Fatalf("failed to create pillar: %v", err)
	}
	return pillar
}

func TestUserRepoCreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	created := createTestUser(t, db, "alice@example.com")
	if created.ID == "" {
		t.Fatal("expected generated user id")
	}

	found, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("got user %s, want %s", found.ID, created.ID)
	}
	if !found.CheckPassword("Secret123!") {
		t.Error("stored password hash does not verify")
	}
	if found.CheckPassword("wrong") {
		t.Error("wrong password verified")
	}

	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("got %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestResultRepoReplaceSnapshotUpserts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	results := NewResultRepo(db)
	user := createTestUser(t, db, "bob@example.com")

	first := []scoring.PillarBreakdown{{PillarID: "p1", PillarName: "People", Obtained: 3, MaxPoints: 4, Weight: 0.2, WeightedScore: 0.15}}
	if err := results.ReplaceSnapshot(ctx, user.ID, 0.15, first); err != nil {
		t.Fatalf("first ReplaceSnapshot failed: %v", err)
	}
	second := []scoring.PillarBreakdown{{PillarID: "p1", PillarName: "People", Obtained: 4, MaxPoints: 4, Weight: 0.2, WeightedScore: 0.2}}
	if err := results.ReplaceSnapshot(ctx, user.ID, 0.2, second); err != nil {
		t.Fatalf("second ReplaceSnapshot failed: %v", err)
	}

	count, err := results.CountForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountForUser failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d snapshot rows, want 1", count)
	}

	snapshot, err := results.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if snapshot.TotalScore != 0.2 {
		t.Errorf("got total %v, want 0.2", snapshot.TotalScore)
	}

	var breakdown []scoring.PillarBreakdown
	if err := json.Unmarshal(snapshot.Breakdown, &breakdown); err != nil {
		t.Fatalf("failed to decode breakdown: %v", err)
	}
	if len(breakdown) != 1 || breakdown[0].Obtained != 4 {
		t.Errorf("unexpected breakdown %+v", breakdown)
	}
}

func TestResponseRepoReplace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	responses := NewResponseRepo(db)
	user := createTestUser(t, db, "carol@example.com")

	pillar := createTestPillar(t, db, "People", 8, 0.5)
	q1 := models.Question{PillarID: pillar.ID, Text: "Q1", MaxPoints: 4, Options: []models.Option{
		{Label: "Full", Points: 4},
		{Label: "None", Points: 0},
	}}
	q2 := models.Question{PillarID: pillar.ID, Text: "Q2", MaxPoints: 4, Options: []models.Option{
		{Label: "Full", Points: 4},
	}}
	if err := db.Create(&q1).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	if err := db.Create(&q2).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	firstOption := q1.Options[0]
	otherOption := q2.Options[0]
	err := responses.Replace(ctx, user.ID, []models.Response{
		{UserID: user.ID, QuestionID: q1.ID, OptionID: &firstOption.ID, Score: firstOption.Points},
		{UserID: user.ID, QuestionID: q2.ID, OptionID: &otherOption.ID, Score: otherOption.Points},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	// Resubmitting only q1 must swap that answer and leave q2 alone.
	downgrade := q1.Options[1]
	err = responses.Replace(ctx, user.ID, []models.Response{
		{UserID: user.ID, QuestionID: q1.ID, OptionID: &downgrade.ID, Score: downgrade.Points},
	})
	if err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}

	stored, err := responses.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("got %d responses, want 2", len(stored))
	}
	byQuestion := make(map[string]models.Response, len(stored))
	for _, r := range stored {
		byQuestion[r.QuestionID] = r
	}
	if got := byQuestion[q1.ID].Score; got != 0 {
		t.Errorf("q1 score = %v, want 0 after resubmission", got)
	}
	if got := byQuestion[q2.ID].Score; got != 4 {
		t.Errorf("q2 score = %v, want 4 (untouched)", got)
	}
	if byQuestion[q1.ID].Question.Text != "Q1" {
		t.Error("expected question preloaded")
	}
	if byQuestion[q1.ID].Question.Pillar.Name != "People" {
		t.Error("expected pillar preloaded through question")
	}
}

func TestResponseRepoReplaceEmptyIsNoop(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	responses := NewResponseRepo(db)
	user := createTestUser(t, db, "dave@example.com")

	if err := responses.Replace(ctx, user.ID, nil); err != nil {
		t.Fatalf("Replace with no responses failed: %v", err)
	}
	stored, err := responses.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("got %d responses, want 0", len(stored))
	}
}

func TestPillarRepoListWithQuestionsVisibility(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pillars := NewPillarRepo(db)

	pillar := createTestPillar(t, db, "Planet", 10, 0.4)
	visible := models.Question{PillarID: pillar.ID, Text: "Visible", MaxPoints: 4, Options: []models.Option{
		{Label: "Low", Points: 1},
		{Label: "High", Points: 4},
		{Label: "Mid", Points: 2},
	}}
	hidden := models.Question{PillarID: pillar.ID, Text: "Hidden", MaxPoints: 4, IsHidden: true}
	if err := db.Create(&visible).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	if err := db.Create(&hidden).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	got, err := pillars.ListWithQuestions(ctx, true)
	if err != nil {
		t.Fatalf("ListWithQuestions failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d pillars, want 1", len(got))
	}
	if len(got[0].Questions) != 1 || got[0].Questions[0].Text != "Visible" {
		t.Fatalf("hidden question leaked into visible listing: %+v", got[0].Questions)
	}
	opts := got[0].Questions[0].Options
	if len(opts) != 3 {
		t.Fatalf("got %d options, want 3", len(opts))
	}
	for i := 1; i < len(opts); i++ {
		if opts[i-1].Points < opts[i].Points {
			t.Errorf("options not ordered by points descending: %v before %v", opts[i-1].Points, opts[i].Points)
		}
	}

	all, err := pillars.ListWithQuestions(ctx, false)
	if err != nil {
		t.Fatalf("ListWithQuestions(false) failed: %v", err)
	}
	if len(all[0].Questions) != 2 {
		t.Errorf("got %d questions in admin listing, want 2", len(all[0].Questions))
	}
}

func TestPillarRepoUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	_, err := NewPillarRepo(db).Update(context.Background(), "no-such-id", map[string]interface{}{"name": "X"})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("got %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestPillarRepoDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pillars := NewPillarRepo(db)
	user := createTestUser(t, db, "erin@example.com")

	pillar := createTestPillar(t, db, "Governance", 6, 0.3)
	question := models.Question{PillarID: pillar.ID, Text: "Q", MaxPoints: 4, Options: []models.Option{{Label: "Yes", Points: 4}}}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	option := question.Options[0]
	if err := NewResponseRepo(db).Replace(ctx, user.ID, []models.Response{
		{UserID: user.ID, QuestionID: question.ID, OptionID: &option.ID, Score: option.Points},
	}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if err := pillars.Delete(ctx, pillar.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var questionCount, optionCount, responseCount int64
	db.Model(&models.Question{}).Count(&questionCount)
	db.Model(&models.Option{}).Count(&optionCount)
	db.Model(&models.Response{}).Count(&responseCount)
	if questionCount != 0 || optionCount != 0 {
		t.Errorf("got %d questions and %d options after delete, want 0 and 0", questionCount, optionCount)
	}
	if responseCount != 1 {
		t.Errorf("got %d responses after delete, want 1 (responses are kept)", responseCount)
	}
}

func TestUserRepoListIDsWithSnapshots(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	results := NewResultRepo(db)

	withSnapshot := createTestUser(t, db, "scored@example.com")
	createTestUser(t, db, "unscored@example.com")
	if err := results.ReplaceSnapshot(ctx, withSnapshot.ID, 0.5, nil); err != nil {
		t.Fatalf("ReplaceSnapshot failed: %v", err)
	}

	ids, err := users.ListIDsWithSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListIDsWithSnapshots failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != withSnapshot.ID {
		t.Errorf("got %v, want [%s]", ids, withSnapshot.ID)
	}
}

func TestScoringStoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewScoringStore(NewPillarRepo(db), NewResponseRepo(db), NewResultRepo(db))
	user := createTestUser(t, db, "frank@example.com")

	pillar := createTestPillar(t, db, "People", 4, 1.0)
	question := models.Question{PillarID: pillar.ID, Text: "Q", MaxPoints: 4, Options: []models.Option{{Label: "Yes", Points: 3}}}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	option := question.Options[0]
	if err := NewResponseRepo(db).Replace(ctx, user.ID, []models.Response{
		{UserID: user.ID, QuestionID: question.ID, OptionID: &option.ID, Score: option.Points},
	}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	listed, err := store.ListPillars(ctx)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListPillars = %v, %v; want one pillar", listed, err)
	}
	responses, err := store.ListResponses(ctx, user.ID)
	if err != nil || len(responses) != 1 {
		t.Fatalf("ListResponses = %v, %v; want one response", responses, err)
	}
	if responses[0].Question.Pillar.ID != pillar.ID {
		t.Error("expected pillar joined onto the response")
	}
	if err := store.ReplaceSnapshot(ctx, user.ID, 0.75, nil); err != nil {
		t.Fatalf("ReplaceSnapshot failed: %v", err)
	}
}
