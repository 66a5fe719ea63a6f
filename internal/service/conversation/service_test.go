package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
	"github.com/opsdeck/opsdeck/internal/service/session"
)

var errNotFound = errors.New("record not found")

// memoryStore 内存实现的 Store，读取消息时返回副本以模拟数据库加载
type memoryStore struct {
	conversations map[string]*model.Conversation
	messages      []*model.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{conversations: make(map[string]*model.Conversation)}
}

func (m *memoryStore) CreateConversation(conv *model.Conversation) error {
	m.conversations[conv.ID] = conv
	return nil
}

func (m *memoryStore) GetConversationByID(id string) (*model.Conversation, error) {
	conv, ok := m.conversations[id]
	if !ok {
		return nil, errNotFound
	}
	return conv, nil
}

func (m *memoryStore) ListConversations(filter *repository.ConversationFilter, offset, limit int) ([]*model.Conversation, error) {
	out := make([]*model.Conversation, 0, len(m.conversations))
	for _, conv := range m.conversations {
		out = append(out, conv)
	}
	return out, nil
}

func (m *memoryStore) SearchConversations(q string, offset, limit int) ([]*model.Conversation, error) {
	return nil, nil
}

func (m *memoryStore) UpdateConversation(conv *model.Conversation) error {
	if _, ok := m.conversations[conv.ID]; !ok {
		return errNotFound
	}
	m.conversations[conv.ID] = conv
	return nil
}

func (m *memoryStore) DeleteConversation(id string) error {
	delete(m.conversations, id)
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.ConversationID != id {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

func (m *memoryStore) ArchiveOlderThan(cutoff time.Time) ([]string, error) {
	var ids []string
	for _, conv := range m.conversations {
		if !conv.Archived && !conv.Pinned && conv.LastMessageAt.Before(cutoff) {
			conv.Archived = true
			ids = append(ids, conv.ID)
		}
	}
	return ids, nil
}

func (m *memoryStore) GetMessagesByConversationID(conversationID string) ([]*model.Message, error) {
	var out []*model.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryStore) GetMessageByID(id string) (*model.Message, error) {
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, errNotFound
}

func (m *memoryStore) UpdateMessage(msg *model.Message) error {
	for i, existing := range m.messages {
		if existing.ID == msg.ID {
			m.messages[i] = msg
			return nil
		}
	}
	return errNotFound
}

func (m *memoryStore) addConversation(id string, lastMessageAt time.Time, pinned bool) {
	m.conversations[id] = &model.Conversation{
		ID:            id,
		Title:         "conv " + id,
		Status:        model.ConversationStatusActive,
		Pinned:        pinned,
		LastMessageAt: lastMessageAt,
	}
}

func (m *memoryStore) addMessage(id, conversationID, role, content string) {
	m.messages = append(m.messages, &model.Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	})
}

func newTestService() (*Service, *memoryStore, *session.Manager) {
	store := newMemoryStore()
	selection := session.NewManager(nil)
	return NewService(store, selection), store, selection
}

func TestDeletedMessageHiddenButOrderPreserved(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	store.addConversation("c1", time.Now(), false)
	store.addMessage("m1", "c1", model.RoleUser, "first")
	store.addMessage("m2", "c1", model.RoleAssistant, "second")
	store.addMessage("m3", "c1", model.RoleUser, "third")

	if err := svc.DeleteMessage(ctx, "m2"); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}

	msgs, err := svc.GetMessages(ctx, "c1")
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages after soft delete, got %d", len(msgs))
	}

	wantIDs := []string{"m1", "m2", "m3"}
	for i, msg := range msgs {
		if msg.ID != wantIDs[i] {
			t.Errorf("message %d: expected id %s, got %s", i, wantIDs[i], msg.ID)
		}
	}

	if !msgs[1].IsDeleted {
		t.Error("expected deleted message to keep its is_deleted flag")
	}
	if msgs[1].Content != model.DeletedMessagePlaceholder {
		t.Errorf("expected placeholder content, got %q", msgs[1].Content)
	}
	if msgs[1].Role != model.RoleAssistant {
		t.Errorf("expected role preserved, got %s", msgs[1].Role)
	}
	if msgs[0].Content != "first" || msgs[2].Content != "third" {
		t.Error("expected untouched messages to keep their content")
	}

	// 占位替换只发生在展示边界，存储内容不变
	stored, _ := store.GetMessageByID("m2")
	if stored.Content != "second" {
		t.Errorf("expected stored content untouched, got %q", stored.Content)
	}
}

func TestEditMessage(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	store.addConversation("c1", time.Now(), false)
	store.addMessage("m1", "c1", model.RoleUser, "original")

	msg, err := svc.EditMessage(ctx, "m1", "revised")
	if err != nil {
		t.Fatalf("EditMessage failed: %v", err)
	}
	if msg.Content != "revised" {
		t.Errorf("expected revised content, got %q", msg.Content)
	}
	if !msg.IsEdited {
		t.Error("expected is_edited flag set")
	}
	if msg.Role != model.RoleUser {
		t.Errorf("expected role preserved, got %s", msg.Role)
	}
}

func TestEditDeletedMessageRejected(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	store.addConversation("c1", time.Now(), false)
	store.addMessage("m1", "c1", model.RoleUser, "gone")

	if err := svc.DeleteMessage(ctx, "m1"); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}
	if _, err := svc.EditMessage(ctx, "m1", "resurrected"); err == nil {
		t.Fatal("expected edit of a deleted message to fail")
	}
}

func TestUpdateArchiveClearsSelection(t *testing.T) {
	ctx := context.Background()
	archived := true

	tests := []struct {
		name         string
		archiveID    string
		wantSelected string
	}{
		{name: "archiving selected conversation clears selection", archiveID: "c1", wantSelected: ""},
		{name: "archiving another conversation keeps selection", archiveID: "c2", wantSelected: "c1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, selection := newTestService()
			store.addConversation("c1", time.Now(), false)
			store.addConversation("c2", time.Now(), false)
			selection.Select(ctx, "client-1", "c1")

			if _, err := svc.Update(ctx, "client-1", tt.archiveID, &UpdateRequest{Archived: &archived}); err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			if got := svc.Selected(ctx, "client-1"); got != tt.wantSelected {
				t.Errorf("expected selected %q, got %q", tt.wantSelected, got)
			}
		})
	}
}

func TestArchiveOldClearsSelection(t *testing.T) {
	ctx := context.Background()
	svc, store, selection := newTestService()

	old := time.Now().AddDate(0, 0, -40)
	store.addConversation("stale", old, false)
	store.addConversation("pinned-stale", old, true)
	store.addConversation("fresh", time.Now(), false)

	selection.Select(ctx, "client-a", "stale")
	selection.Select(ctx, "client-b", "fresh")

	count, err := svc.ArchiveOld(ctx, 30)
	if err != nil {
		t.Fatalf("ArchiveOld failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 archived conversation, got %d", count)
	}

	if !store.conversations["stale"].Archived {
		t.Error("expected stale conversation archived")
	}
	if store.conversations["pinned-stale"].Archived {
		t.Error("expected pinned conversation untouched")
	}
	if store.conversations["fresh"].Archived {
		t.Error("expected fresh conversation untouched")
	}

	if got := svc.Selected(ctx, "client-a"); got != "" {
		t.Errorf("expected selection of archived conversation cleared, got %q", got)
	}
	if got := svc.Selected(ctx, "client-b"); got != "fresh" {
		t.Errorf("expected unrelated selection kept, got %q", got)
	}
}

func TestDeleteConversationClearsSelection(t *testing.T) {
	ctx := context.Background()
	svc, store, selection := newTestService()

	store.addConversation("c1", time.Now(), false)
	store.addMessage("m1", "c1", model.RoleUser, "hello")
	selection.Select(ctx, "client-1", "c1")

	if err := svc.Delete(ctx, "client-1", "c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, "c1"); err == nil {
		t.Fatal("expected conversation gone after delete")
	}
	if msgs, _ := svc.GetMessages(ctx, "c1"); len(msgs) != 0 {
		t.Errorf("expected messages cascaded, got %d", len(msgs))
	}
	if got := svc.Selected(ctx, "client-1"); got != "" {
		t.Errorf("expected selection cleared, got %q", got)
	}
}
