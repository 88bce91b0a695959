package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gofilm-social/apps/social-service/model"
)

// TestSearchFields 测试检索范围参数解析
func TestSearchFields(t *testing.T) {
	cases := []struct {
		by      string
		want    []string
		wantErr bool
	}{
		{by: "", want: nil},
		{by: "title", want: []string{"name^2", "description"}},
		{by: "director", want: []string{"directors"}},
		{by: "director,title", want: []string{"directors", "name^2", "description"}},
		{by: "Title, DIRECTOR", want: []string{"name^2", "description", "directors"}},
		{by: "year", wantErr: true},
	}

	for _, tc := range cases {
		fields, err := searchFields(tc.by)
		if tc.wantErr {
			if !errors.Is(err, model.ErrInvalidArgument) {
				t.Errorf("searchFields(%q): expected ErrInvalidArgument, got %v", tc.by, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("searchFields(%q) failed: %v", tc.by, err)
			continue
		}
		if !reflect.DeepEqual(fields, tc.want) {
			t.Errorf("searchFields(%q) = %v, want %v", tc.by, fields, tc.want)
		}
	}
}

// TestSearchFilmsValidation 测试检索入参校验与未启用降级
func TestSearchFilmsValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.SearchFilms(ctx, "", "", 10); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty query, got %v", err)
	}

	// 未启用检索时降级为服务不可用
	if _, err := svc.SearchFilms(ctx, "matrix", "", 10); !errors.Is(err, model.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable without search backend, got %v", err)
	}
}
