package service

import (
	"context"
	"errors"
	"testing"

	"gofilm-social/apps/social-service/model"
)

// TestReviewLifecycle 测试影评创建、更新与删除及动态记录
func TestReviewLifecycle(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	film := store.addFilm("Film", 2000, nil, nil)

	review, err := svc.CreateReview(ctx, "great film", true, alice, film)
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}
	if review.ID == 0 {
		t.Fatal("expected review ID to be assigned")
	}

	updated, err := svc.UpdateReview(ctx, review.ID, "changed my mind", false)
	if err != nil {
		t.Fatalf("UpdateReview failed: %v", err)
	}
	if updated.Content != "changed my mind" || updated.IsPositive {
		t.Errorf("unexpected updated review: %+v", updated)
	}

	if err := svc.DeleteReview(ctx, review.ID); err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
	if _, err := svc.GetReview(ctx, review.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// 三条REVIEW动态：ADD、UPDATE、REMOVE
	feed, _ := svc.GetFeed(ctx, alice)
	if len(feed) != 3 {
		t.Fatalf("expected 3 feed events, got %d", len(feed))
	}
	wantOps := []string{model.OperationAdd, model.OperationUpdate, model.OperationRemove}
	for i, e := range feed {
		if e.EventType != model.EventTypeReview || e.Operation != wantOps[i] {
			t.Errorf("position %d: unexpected event %+v", i, e)
		}
	}
}

// TestReviewVotes 测试投票对useful计数的影响
func TestReviewVotes(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")
	film := store.addFilm("Film", 2000, nil, nil)

	review, err := svc.CreateReview(ctx, "great film", true, alice, film)
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	// 赞 → +1
	if err := svc.AddReviewVote(ctx, review.ID, bob, true); err != nil {
		t.Fatalf("AddReviewVote failed: %v", err)
	}
	got, _ := svc.GetReview(ctx, review.ID)
	if got.Useful != 1 {
		t.Errorf("expected useful 1 after like, got %d", got.Useful)
	}

	// 重复同向投票幂等
	if err := svc.AddReviewVote(ctx, review.ID, bob, true); err != nil {
		t.Fatalf("repeated AddReviewVote failed: %v", err)
	}
	got, _ = svc.GetReview(ctx, review.ID)
	if got.Useful != 1 {
		t.Errorf("expected useful 1 after repeated like, got %d", got.Useful)
	}

	// 换边投票 → -1
	if err := svc.AddReviewVote(ctx, review.ID, bob, false); err != nil {
		t.Fatalf("switch vote failed: %v", err)
	}
	got, _ = svc.GetReview(ctx, review.ID)
	if got.Useful != -1 {
		t.Errorf("expected useful -1 after switch, got %d", got.Useful)
	}

	// 撤销投票 → 0
	if err := svc.RemoveReviewVote(ctx, review.ID, bob); err != nil {
		t.Fatalf("RemoveReviewVote failed: %v", err)
	}
	got, _ = svc.GetReview(ctx, review.ID)
	if got.Useful != 0 {
		t.Errorf("expected useful 0 after removal, got %d", got.Useful)
	}
}

// TestListReviewsOrdering 测试影评列表按useful降序
func TestListReviewsOrdering(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")
	film := store.addFilm("Film", 2000, nil, nil)

	r1, err := svc.CreateReview(ctx, "first", true, alice, film)
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}
	r2, err := svc.CreateReview(ctx, "second", false, bob, film)
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	// r2得两票，r1零票
	if err := svc.AddReviewVote(ctx, r2.ID, alice, true); err != nil {
		t.Fatalf("AddReviewVote failed: %v", err)
	}
	if err := svc.AddReviewVote(ctx, r2.ID, carol, true); err != nil {
		t.Fatalf("AddReviewVote failed: %v", err)
	}

	reviews, err := svc.ListReviews(ctx, film, 10)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 2 || reviews[0].ID != r2.ID || reviews[1].ID != r1.ID {
		t.Errorf("unexpected ordering: %v", reviews)
	}
}

// TestCreateReviewValidation 测试影评参数校验
func TestCreateReviewValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	film := store.addFilm("Film", 2000, nil, nil)

	if _, err := svc.CreateReview(ctx, "", true, alice, film); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty content, got %v", err)
	}
	if _, err := svc.CreateReview(ctx, "text", true, 999, film); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
	if _, err := svc.CreateReview(ctx, "text", true, alice, 999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown film, got %v", err)
	}
}
