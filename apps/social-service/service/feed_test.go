package service

import (
	"context"
	"errors"
	"testing"

	"gofilm-social/apps/social-service/model"
)

// TestFeedOrdering 测试动态按时间戳升序、并列按事件ID升序
func TestFeedOrdering(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")

	// 乱序写入，含时间戳并列
	events := []*model.FeedEvent{
		{ID: 5, UserID: alice, EventType: model.EventTypeLike, Operation: model.OperationAdd, EntityID: 1, Timestamp: 300},
		{ID: 2, UserID: alice, EventType: model.EventTypeFriend, Operation: model.OperationAdd, EntityID: 2, Timestamp: 100},
		{ID: 4, UserID: alice, EventType: model.EventTypeLike, Operation: model.OperationRemove, EntityID: 1, Timestamp: 200},
		{ID: 3, UserID: alice, EventType: model.EventTypeLike, Operation: model.OperationAdd, EntityID: 1, Timestamp: 200},
	}
	for _, e := range events {
		if err := store.AppendEvent(ctx, e); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	feed, err := svc.GetFeed(ctx, alice)
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	wantIDs := []int64{2, 3, 4, 5}
	if len(feed) != len(wantIDs) {
		t.Fatalf("expected %d events, got %d", len(wantIDs), len(feed))
	}
	for i, e := range feed {
		if e.ID != wantIDs[i] {
			t.Errorf("position %d: expected event %d, got %d", i, wantIDs[i], e.ID)
		}
	}
}

// TestFeedOnlyOwnEvents 测试动态只包含本人的事件
func TestFeedOnlyOwnEvents(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")
	film := store.addFilm("Film", 2000, nil, nil)

	mustAddLike(t, svc, alice, film)
	mustAddLike(t, svc, bob, film)

	feed, err := svc.GetFeed(ctx, alice)
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if len(feed) != 1 || feed[0].UserID != alice {
		t.Errorf("expected only alice's events, got %v", feed)
	}
}

// TestFeedUnknownUser 测试查询不存在用户的动态
func TestFeedUnknownUser(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.GetFeed(context.Background(), 999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
