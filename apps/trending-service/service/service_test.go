package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"

	"gofilm-social/apps/trending-service/model"
	"gofilm-social/pkg/logger"
)

// TestHandleMessageSkipsMalformed 测试格式错误的消息被跳过而不报错
func TestHandleMessageSkipsMalformed(t *testing.T) {
	svc := NewService(nil, nil, logger.GetLogger())

	msg := &sarama.ConsumerMessage{Value: []byte("not json")}
	if err := svc.HandleMessage(msg); err != nil {
		t.Errorf("expected malformed message to be skipped, got %v", err)
	}
}

// TestHandleMessageIgnoresNonLikeEvents 测试非点赞事件被忽略
func TestHandleMessageIgnoresNonLikeEvents(t *testing.T) {
	svc := NewService(nil, nil, logger.GetLogger())

	for _, eventType := range []string{"FRIEND", "REVIEW"} {
		event := model.SocialEvent{
			EventID:   1,
			EventType: eventType,
			Operation: model.OperationAdd,
			UserID:    1,
			EntityID:  10,
			Timestamp: time.Now(),
		}
		data, err := json.Marshal(event)
		if err != nil {
			t.Fatalf("marshal event: %v", err)
		}
		if err := svc.HandleMessage(&sarama.ConsumerMessage{Value: data}); err != nil {
			t.Errorf("expected %s event to be ignored, got %v", eventType, err)
		}
	}
}

// TestHandleMessageIgnoresUnknownOperation 测试未知操作被忽略
func TestHandleMessageIgnoresUnknownOperation(t *testing.T) {
	svc := NewService(nil, nil, logger.GetLogger())

	event := model.SocialEvent{
		EventID:   1,
		EventType: model.EventTypeLike,
		Operation: "UPDATE",
		UserID:    1,
		EntityID:  10,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	if err := svc.HandleMessage(&sarama.ConsumerMessage{Value: data}); err != nil {
		t.Errorf("expected unknown operation to be ignored, got %v", err)
	}
}
