package service

import (
	"context"
	"errors"
	"testing"

	"gofilm-social/apps/social-service/model"
)

// TestAddFriendSymmetry 测试好友关系双向可见
func TestAddFriendSymmetry(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")

	if err := svc.AddFriend(ctx, alice, bob); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}

	aliceFriends, err := svc.GetFriends(ctx, alice)
	if err != nil {
		t.Fatalf("GetFriends failed: %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].ID != bob {
		t.Errorf("expected alice's friends to be [bob], got %v", aliceFriends)
	}

	bobFriends, err := svc.GetFriends(ctx, bob)
	if err != nil {
		t.Fatalf("GetFriends failed: %v", err)
	}
	if len(bobFriends) != 1 || bobFriends[0].ID != alice {
		t.Errorf("expected bob's friends to be [alice], got %v", bobFriends)
	}
}

// TestRemoveFriendBothDirections 测试任一方解除后双向消失
func TestRemoveFriendBothDirections(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")

	if err := svc.AddFriend(ctx, alice, bob); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	// bob侧发起解除
	if err := svc.RemoveFriend(ctx, bob, alice); err != nil {
		t.Fatalf("RemoveFriend failed: %v", err)
	}

	aliceFriends, _ := svc.GetFriends(ctx, alice)
	bobFriends, _ := svc.GetFriends(ctx, bob)
	if len(aliceFriends) != 0 || len(bobFriends) != 0 {
		t.Errorf("expected no friends after removal, got alice=%v bob=%v", aliceFriends, bobFriends)
	}
}

// TestAddFriendSelf 测试不能添加自己为好友
func TestAddFriendSelf(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")

	err := svc.AddFriend(ctx, alice, alice)
	if !errors.Is(err, model.ErrInvalidRelation) {
		t.Errorf("expected ErrInvalidRelation, got %v", err)
	}
	err = svc.RemoveFriend(ctx, alice, alice)
	if !errors.Is(err, model.ErrInvalidRelation) {
		t.Errorf("expected ErrInvalidRelation, got %v", err)
	}
}

// TestAddFriendUnknownUser 测试引用不存在的用户
func TestAddFriendUnknownUser(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")

	if err := svc.AddFriend(ctx, alice, 999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown friend, got %v", err)
	}
	if err := svc.AddFriend(ctx, 999, alice); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}

// TestAddFriendIdempotent 测试重复添加好友只产生一条动态
func TestAddFriendIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")

	if err := svc.AddFriend(ctx, alice, bob); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if err := svc.AddFriend(ctx, alice, bob); err != nil {
		t.Fatalf("repeated AddFriend failed: %v", err)
	}

	events, err := svc.GetFeed(ctx, alice)
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 feed event, got %d", len(events))
	}
	if events[0].EventType != model.EventTypeFriend || events[0].Operation != model.OperationAdd {
		t.Errorf("unexpected event: %+v", events[0])
	}
	if events[0].EntityID != bob {
		t.Errorf("expected entity %d, got %d", bob, events[0].EntityID)
	}
}

// TestRemoveFriendNoop 测试解除不存在的关系不产生动态
func TestRemoveFriendNoop(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")

	if err := svc.RemoveFriend(ctx, alice, bob); err != nil {
		t.Fatalf("RemoveFriend failed: %v", err)
	}
	events, _ := svc.GetFeed(ctx, alice)
	if len(events) != 0 {
		t.Errorf("expected no feed events, got %d", len(events))
	}
}

// TestCommonFriends 测试共同好友查询
func TestCommonFriends(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")
	dave := store.addUser("dave")

	mustAddFriend(t, svc, alice, carol)
	mustAddFriend(t, svc, alice, dave)
	mustAddFriend(t, svc, bob, carol)

	common, err := svc.GetCommonFriends(ctx, alice, bob)
	if err != nil {
		t.Fatalf("GetCommonFriends failed: %v", err)
	}
	if len(common) != 1 || common[0].ID != carol {
		t.Errorf("expected common friends [carol], got %v", common)
	}

	// 对称性
	reversed, err := svc.GetCommonFriends(ctx, bob, alice)
	if err != nil {
		t.Fatalf("GetCommonFriends failed: %v", err)
	}
	if len(reversed) != 1 || reversed[0].ID != carol {
		t.Errorf("expected symmetric result [carol], got %v", reversed)
	}

	if _, err := svc.GetCommonFriends(ctx, alice, alice); !errors.Is(err, model.ErrInvalidRelation) {
		t.Errorf("expected ErrInvalidRelation for self comparison, got %v", err)
	}
}

func mustAddFriend(t *testing.T, svc *Service, userID, friendID int64) {
	t.Helper()
	if err := svc.AddFriend(context.Background(), userID, friendID); err != nil {
		t.Fatalf("AddFriend(%d, %d) failed: %v", userID, friendID, err)
	}
}
