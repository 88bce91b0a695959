package service

import (
	"context"
	"errors"
	"testing"

	"gofilm-social/apps/social-service/model"
)

// TestTopFilmsOrdering 测试热门电影按点赞数降序、并列按ID升序
func TestTopFilmsOrdering(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	u3 := store.addUser("u3")

	film1 := store.addFilm("Film A", 2000, nil, nil)
	film2 := store.addFilm("Film B", 2001, nil, nil)
	film3 := store.addFilm("Film C", 2002, nil, nil)

	// film2两个赞，film1和film3各一个赞
	mustAddLike(t, svc, u1, film2)
	mustAddLike(t, svc, u2, film2)
	mustAddLike(t, svc, u2, film3)
	mustAddLike(t, svc, u3, film1)

	films, err := svc.TopFilms(ctx, 10, 0, 0)
	if err != nil {
		t.Fatalf("TopFilms failed: %v", err)
	}
	if len(films) != 3 {
		t.Fatalf("expected 3 films, got %d", len(films))
	}
	// film2第一，film1和film3并列按ID升序
	want := []int64{film2, film1, film3}
	for i, f := range films {
		if f.ID != want[i] {
			t.Errorf("position %d: expected film %d, got %d", i, want[i], f.ID)
		}
	}
	if films[0].LikeCount != 2 {
		t.Errorf("expected like count 2 for top film, got %d", films[0].LikeCount)
	}
}

// TestTopFilmsLimit 测试limit截断与非法limit
func TestTopFilmsLimit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	film1 := store.addFilm("Film A", 2000, nil, nil)
	store.addFilm("Film B", 2001, nil, nil)
	mustAddLike(t, svc, u1, film1)

	films, err := svc.TopFilms(ctx, 1, 0, 0)
	if err != nil {
		t.Fatalf("TopFilms failed: %v", err)
	}
	if len(films) != 1 || films[0].ID != film1 {
		t.Errorf("expected [film1], got %v", films)
	}

	if _, err := svc.TopFilms(ctx, 0, 0, 0); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for limit 0, got %v", err)
	}
	if _, err := svc.TopFilms(ctx, -5, 0, 0); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative limit, got %v", err)
	}
}

// TestTopFilmsFilters 测试类型与年份过滤
func TestTopFilmsFilters(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	comedy := int64(1)
	drama := int64(2)

	film1 := store.addFilm("Comedy 2000", 2000, []int64{comedy}, nil)
	film2 := store.addFilm("Drama 2000", 2000, []int64{drama}, nil)
	film3 := store.addFilm("Comedy 2001", 2001, []int64{comedy}, nil)
	mustAddLike(t, svc, u1, film2)

	byGenre, err := svc.TopFilms(ctx, 10, comedy, 0)
	if err != nil {
		t.Fatalf("TopFilms failed: %v", err)
	}
	if len(byGenre) != 2 || byGenre[0].ID != film1 || byGenre[1].ID != film3 {
		t.Errorf("unexpected genre filter result: %v", byGenre)
	}

	byYear, err := svc.TopFilms(ctx, 10, 0, 2000)
	if err != nil {
		t.Fatalf("TopFilms failed: %v", err)
	}
	if len(byYear) != 2 || byYear[0].ID != film2 {
		t.Errorf("unexpected year filter result: %v", byYear)
	}

	both, err := svc.TopFilms(ctx, 10, comedy, 2001)
	if err != nil {
		t.Fatalf("TopFilms failed: %v", err)
	}
	if len(both) != 1 || both[0].ID != film3 {
		t.Errorf("unexpected combined filter result: %v", both)
	}
}

// TestCommonFilmsSymmetry 测试共同电影查询与参数顺序无关
func TestCommonFilmsSymmetry(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")

	film1 := store.addFilm("Film A", 2000, nil, nil)
	film2 := store.addFilm("Film B", 2001, nil, nil)
	film3 := store.addFilm("Film C", 2002, nil, nil)

	mustAddLike(t, svc, alice, film1)
	mustAddLike(t, svc, alice, film2)
	mustAddLike(t, svc, bob, film2)
	mustAddLike(t, svc, bob, film3)

	common, err := svc.CommonFilms(ctx, alice, bob)
	if err != nil {
		t.Fatalf("CommonFilms failed: %v", err)
	}
	if len(common) != 1 || common[0].ID != film2 {
		t.Errorf("expected common [film2], got %v", common)
	}

	reversed, err := svc.CommonFilms(ctx, bob, alice)
	if err != nil {
		t.Fatalf("CommonFilms failed: %v", err)
	}
	if len(reversed) != 1 || reversed[0].ID != film2 {
		t.Errorf("expected symmetric result [film2], got %v", reversed)
	}
}

// TestFilmsByDirectorSort 测试导演电影的两种排序模式
func TestFilmsByDirectorSort(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	director := store.addDirector("Kurosawa")

	early := store.addFilm("Early", 1950, nil, []int64{director})
	late := store.addFilm("Late", 1985, nil, []int64{director})
	store.addFilm("Other", 1960, nil, nil)

	// 晚期作品更热门
	mustAddLike(t, svc, u1, late)
	mustAddLike(t, svc, u2, late)
	mustAddLike(t, svc, u1, early)

	byYear, err := svc.FilmsByDirector(ctx, director, "year")
	if err != nil {
		t.Fatalf("FilmsByDirector failed: %v", err)
	}
	if len(byYear) != 2 || byYear[0].ID != early || byYear[1].ID != late {
		t.Errorf("unexpected year ordering: %v", byYear)
	}

	byLikes, err := svc.FilmsByDirector(ctx, director, "likes")
	if err != nil {
		t.Fatalf("FilmsByDirector failed: %v", err)
	}
	if len(byLikes) != 2 || byLikes[0].ID != late || byLikes[1].ID != early {
		t.Errorf("unexpected likes ordering: %v", byLikes)
	}

	// 排序模式大小写不敏感
	upper, err := svc.FilmsByDirector(ctx, director, "YEAR")
	if err != nil {
		t.Fatalf("FilmsByDirector failed: %v", err)
	}
	if len(upper) != 2 || upper[0].ID != early {
		t.Errorf("expected case-insensitive sortBy, got %v", upper)
	}
}

// TestFilmsByDirectorErrors 测试非法排序模式与未知导演
func TestFilmsByDirectorErrors(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	director := store.addDirector("Kurosawa")

	if _, err := svc.FilmsByDirector(ctx, director, "rating"); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for bad sortBy, got %v", err)
	}
	if _, err := svc.FilmsByDirector(ctx, 999, "year"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown director, got %v", err)
	}
}

func mustAddLike(t *testing.T, svc *Service, userID, filmID int64) {
	t.Helper()
	if err := svc.AddLike(context.Background(), userID, filmID); err != nil {
		t.Fatalf("AddLike(%d, %d) failed: %v", userID, filmID, err)
	}
}
