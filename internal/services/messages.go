package services

import (
	"context"

	"github.com/sabtech/whatsgate-backend/internal/models"
	"github.com/sabtech/whatsgate-backend/internal/store"
	"github.com/sabtech/whatsgate-backend/pkg/utils"
)

// MessageIDLength is the length of the public message identifier.
const MessageIDLength = 12

// ErrNotAuthenticatedDetail is recorded on messages rejected because the
// owning instance has not completed the (simulated) QR scan.
const ErrNotAuthenticatedDetail = "Instance not authenticated (scan QR first)"

// Notifier fans a gateway event out to an instance's subscribers. Delivery is
// best-effort: the caller never observes failures.
type Notifier interface {
	Notify(instanceID, event string, data map[string]interface{})
}

// SendInput is one outbound send attempt.
type SendInput struct {
	InstanceID string
	Token      string
	To         string
	Type       string
	Content    models.MessageContent
}

// SendResult mirrors the boundary contract {message_id, status, error}.
type SendResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// MessageService accepts outbound messages for authenticated instances. No
// actual transport delivery happens: the service simulates gateway-level
// acceptance, deciding the final status synchronously at creation time.
type MessageService struct {
	instances store.InstanceStore
	messages  store.MessageStore
	notifier  Notifier
}

func NewMessageService(instances store.InstanceStore, messages store.MessageStore, notifier Notifier) *MessageService {
	return &MessageService{instances: instances, messages: messages, notifier: notifier}
}

// Send validates the instance credentials and payload, persists the message
// with its creation-time status and, for accepted messages, fires a
// message.status notification without blocking on subscriber I/O.
func (s *MessageService) Send(ctx context.Context, in SendInput) (*SendResult, error) {
	inst, err := resolveInstance(ctx, s.instances, in.InstanceID, in.Token)
	if err != nil {
		return nil, err
	}

	if in.To == "" {
		return nil, ErrInvalidRequest
	}

	msgType := in.Type
	if msgType == "" {
		msgType = models.TypeText
	}
	if !models.MessageTypes[msgType] {
		return nil, ErrInvalidRequest
	}
	// The content field must match the declared type.
	if !in.Content.FieldFor(msgType) {
		return nil, ErrInvalidRequest
	}

	messageID, err := utils.RandomToken(MessageIDLength)
	if err != nil {
		return nil, err
	}

	status := models.StatusSent
	errDetail := ""
	if !inst.IsAuthenticated {
		status = models.StatusFailed
		errDetail = ErrNotAuthenticatedDetail
	}

	msg := &models.Message{
		InstanceID: in.InstanceID,
		To:         in.To,
		Type:       msgType,
		Content:    in.Content,
		Status:     status,
		Error:      errDetail,
		MessageID:  messageID,
	}
	if err := s.messages.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	if status == models.StatusSent && s.notifier != nil {
		// Fire-and-forget: send latency never depends on subscriber I/O.
		go s.notifier.Notify(in.InstanceID, models.EventMessageStatus, map[string]interface{}{
			"message_id": messageID,
			"status":     status,
		})
	}

	return &SendResult{MessageID: messageID, Status: status, Error: errDetail}, nil
}

// Status returns the status recorded at send time. Messages are never mutated
// after creation, so this cannot drift from the send response.
func (s *MessageService) Status(ctx context.Context, messageID string) (*SendResult, error) {
	msg, err := s.messages.FindByMessageID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrNotFound
	}
	return &SendResult{MessageID: msg.MessageID, Status: msg.Status, Error: msg.Error}, nil
}

// resolveInstance looks up an instance by public id and verifies the presented
// secret token against the stored hash. Unknown instance and token mismatch
// are indistinguishable to the caller.
func resolveInstance(ctx context.Context, instances store.InstanceStore, instanceID, token string) (*models.Instance, error) {
	inst, err := instances.FindByInstanceID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrUnauthorized
	}
	ok, err := utils.VerifyInstanceToken(token, inst.TokenHash)
	if err != nil || !ok {
		return nil, ErrUnauthorized
	}
	return inst, nil
}
