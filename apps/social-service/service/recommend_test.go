package service

import (
	"context"
	"testing"
)

// TestRecommendations 测试基于最相似邻居的推荐
func TestRecommendations(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	u3 := store.addUser("u3")

	film10 := store.addFilm("Film 10", 2000, nil, nil)
	film20 := store.addFilm("Film 20", 2001, nil, nil)
	film30 := store.addFilm("Film 30", 2002, nil, nil)

	// u1喜欢{10,20}，u2喜欢{20,30}，u3喜欢{10}
	mustAddLike(t, svc, u1, film10)
	mustAddLike(t, svc, u1, film20)
	mustAddLike(t, svc, u2, film20)
	mustAddLike(t, svc, u2, film30)
	mustAddLike(t, svc, u3, film10)

	// u2与u3和u1的交集都是1，取ID较小的u2，推荐其独有的film30
	recs, err := svc.GetRecommendations(ctx, u1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != film30 {
		t.Errorf("expected recommendation [film30], got %v", recs)
	}
}

// TestRecommendationsOrderedByFilmID 测试多条推荐按电影ID升序而非点赞数排序
func TestRecommendationsOrderedByFilmID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	extra1 := store.addUser("extra1")
	extra2 := store.addUser("extra2")

	shared := store.addFilm("Shared", 2000, nil, nil)
	filmA := store.addFilm("Film A", 2001, nil, nil)
	filmB := store.addFilm("Film B", 2002, nil, nil)

	// u1与u2通过shared重叠，u2独有{filmA, filmB}
	mustAddLike(t, svc, u1, shared)
	mustAddLike(t, svc, u2, shared)
	mustAddLike(t, svc, u2, filmA)
	mustAddLike(t, svc, u2, filmB)

	// 让ID较大的filmB点赞数更高，点赞数排序会把它排到前面
	mustAddLike(t, svc, extra1, filmB)
	mustAddLike(t, svc, extra2, filmB)

	recs, err := svc.GetRecommendations(ctx, u1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].ID != filmA || recs[1].ID != filmB {
		t.Errorf("expected recommendations ordered by film ID [%d %d], got [%d %d]",
			filmA, filmB, recs[0].ID, recs[1].ID)
	}
}

// TestRecommendationsNoLikes 测试无点赞历史时返回空列表
func TestRecommendationsNoLikes(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	film := store.addFilm("Film", 2000, nil, nil)
	mustAddLike(t, svc, u2, film)

	recs, err := svc.GetRecommendations(ctx, u1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty recommendations, got %v", recs)
	}
}

// TestRecommendationsNoOverlap 测试无重叠邻居时返回空列表
func TestRecommendationsNoOverlap(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	film1 := store.addFilm("Film A", 2000, nil, nil)
	film2 := store.addFilm("Film B", 2001, nil, nil)

	mustAddLike(t, svc, u1, film1)
	mustAddLike(t, svc, u2, film2)

	recs, err := svc.GetRecommendations(ctx, u1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty recommendations, got %v", recs)
	}
}

// TestRecommendationsNeighborFullyOverlaps 测试邻居没有新电影时返回空列表
func TestRecommendationsNeighborFullyOverlaps(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	u1 := store.addUser("u1")
	u2 := store.addUser("u2")
	film := store.addFilm("Film", 2000, nil, nil)

	mustAddLike(t, svc, u1, film)
	mustAddLike(t, svc, u2, film)

	recs, err := svc.GetRecommendations(ctx, u1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty recommendations, got %v", recs)
	}
}
