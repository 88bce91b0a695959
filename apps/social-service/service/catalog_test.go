package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gofilm-social/apps/social-service/model"
)

// TestCreateUserValidation 测试用户参数校验
func TestCreateUserValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	cases := []struct {
		name string
		user model.User
	}{
		{"empty email", model.User{Email: "", Login: "alice"}},
		{"email without at", model.User{Email: "alice.example.com", Login: "alice"}},
		{"empty login", model.User{Email: "a@b.com", Login: ""}},
		{"login with space", model.User{Email: "a@b.com", Login: "al ice"}},
		{"future birthday", model.User{Email: "a@b.com", Login: "alice", Birthday: time.Now().Add(48 * time.Hour)}},
	}
	for _, tc := range cases {
		user := tc.user
		if _, err := svc.CreateUser(ctx, &user); !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}
}

// TestCreateUserDefaultsName 测试名称为空时用登录名代替
func TestCreateUserDefaultsName(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.User{
		Email: "alice@example.com",
		Login: "alice",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Name != "alice" {
		t.Errorf("expected name to default to login, got %q", user.Name)
	}
	if user.ID == 0 {
		t.Error("expected user ID to be assigned")
	}
}

// TestCreateFilmValidation 测试电影参数校验
func TestCreateFilmValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	valid := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		film model.Film
	}{
		{"empty name", model.Film{Name: "", ReleaseDate: valid, Duration: 120}},
		{"before first screening", model.Film{Name: "Film", ReleaseDate: time.Date(1890, 1, 1, 0, 0, 0, 0, time.UTC), Duration: 120}},
		{"zero duration", model.Film{Name: "Film", ReleaseDate: valid, Duration: 0}},
		{"negative duration", model.Film{Name: "Film", ReleaseDate: valid, Duration: -10}},
	}
	for _, tc := range cases {
		film := tc.film
		if _, err := svc.CreateFilm(ctx, &film, nil, nil); !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}

	film := model.Film{Name: "Film", ReleaseDate: valid, Duration: 120}
	created, err := svc.CreateFilm(ctx, &film, nil, nil)
	if err != nil {
		t.Fatalf("CreateFilm failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected film ID to be assigned")
	}
}

// TestUpdateFilm 测试电影更新与不存在校验
func TestUpdateFilm(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	filmID := store.addFilm("Old Name", 2000, nil, nil)
	director := store.addDirector("Nolan")

	updated := model.Film{
		ID:          filmID,
		Name:        "New Name",
		ReleaseDate: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:    150,
	}
	if _, err := svc.UpdateFilm(ctx, &updated, nil, []int64{director}); err != nil {
		t.Fatalf("UpdateFilm failed: %v", err)
	}

	summary, err := svc.GetFilmSummary(ctx, filmID)
	if err != nil {
		t.Fatalf("GetFilmSummary failed: %v", err)
	}
	if summary.Name != "New Name" || summary.Duration != 150 {
		t.Errorf("unexpected summary after update: %+v", summary)
	}

	missing := model.Film{
		ID:          999,
		Name:        "Ghost",
		ReleaseDate: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:    100,
	}
	if _, err := svc.UpdateFilm(ctx, &missing, nil, nil); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown film, got %v", err)
	}

	invalid := model.Film{ID: filmID, Name: "", ReleaseDate: updated.ReleaseDate, Duration: 100}
	if _, err := svc.UpdateFilm(ctx, &invalid, nil, nil); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty name, got %v", err)
	}
}

// TestGetFilmSummary 测试电影汇总包含点赞数
func TestGetFilmSummary(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	film := store.addFilm("Film", 2000, nil, nil)
	mustAddLike(t, svc, alice, film)

	summary, err := svc.GetFilmSummary(ctx, film)
	if err != nil {
		t.Fatalf("GetFilmSummary failed: %v", err)
	}
	if summary.ID != film || summary.LikeCount != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	if _, err := svc.GetFilmSummary(ctx, 999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
