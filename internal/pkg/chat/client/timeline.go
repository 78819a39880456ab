package chatclient

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
)

// tempIDPrefix marks client-generated ids. Server ids are uuids and can
// never collide with this namespace; a temp id is never reused once the
// server assigns a final id.
const tempIDPrefix = "tmp_"

var (
	ErrUnknownMessage = errors.New("timeline: unknown message id")
	ErrNotOptimistic  = errors.New("timeline: message is not an optimistic entry")
)

// Timeline is the ordered, deduplicated, optimistic view of one
// conversation. It keeps an id-indexed map alongside an insertion-order
// sequence so "replace by id, preserve position" is a first-class
// operation.
//
// Optimistic entries are appended at the tail in submission order and keep
// their position forever; confirmation only swaps id/timestamp/status.
// Remote messages are inserted at their sorted position without disturbing
// the relative order of anything already present.
type Timeline struct {
	mu    sync.Mutex
	loc   *time.Location
	index map[string]int // message id -> position in order
	order []chat.Message

	ConversationID string
	SelfID         string
	PeerID         string
}

// NewTimeline constructs an empty timeline for the conversation. Date
// grouping uses the local time zone unless overridden with SetLocation.
func NewTimeline(conversationID, selfID, peerID string) *Timeline {
	return &Timeline{
		loc:            time.Local,
		index:          make(map[string]int),
		ConversationID: conversationID,
		SelfID:         selfID,
		PeerID:         peerID,
	}
}

// SetLocation changes the calendar used by GroupByDate.
func (t *Timeline) SetLocation(loc *time.Location) {
	t.mu.Lock()
	t.loc = loc
	t.mu.Unlock()
}

// AppendOptimistic inserts a locally authored message with status=sending
// and returns its temp id so the caller can correlate the later
// confirmation or failure.
func (t *Timeline) AppendOptimistic(body string, kind chat.MessageKind) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", errors.New("timeline: empty message body")
	}
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("timeline: generate temp id: %w", err)
	}
	tempID := tempIDPrefix + suffix

	msg := chat.Message{
		ID:             tempID,
		ConversationID: t.ConversationID,
		SenderID:       t.SelfID,
		ReceiverID:     t.PeerID,
		Body:           body,
		Kind:           kind,
		Status:         chat.StateSending,
		CreatedAt:      time.Now(),
	}

	t.mu.Lock()
	t.index[tempID] = len(t.order)
	t.order = append(t.order, msg)
	t.mu.Unlock()
	return tempID, nil
}

// Confirm replaces the optimistic entry's id and timestamp with the
// server-authoritative values and advances it to sent. The entry keeps its
// list position: re-sorting by server timestamp would visually reorder a
// message the user already sees.
func (t *Timeline) Confirm(tempID string, server chat.Message) error {
	if !strings.HasPrefix(tempID, tempIDPrefix) {
		return ErrNotOptimistic
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[tempID]
	if !ok {
		return ErrUnknownMessage
	}

	// The server echo may have raced in through ingest before this
	// confirmation; drop that copy and keep the optimistic position.
	if dupPos, exists := t.index[server.ID]; exists && dupPos != pos {
		t.removeAtLocked(dupPos)
		pos = t.index[tempID]
	}

	entry := &t.order[pos]
	entry.Status = entry.Status.Advance(chat.StateSent)
	entry.ID = server.ID
	if !server.CreatedAt.IsZero() {
		entry.CreatedAt = server.CreatedAt
	}

	delete(t.index, tempID)
	t.index[server.ID] = pos
	return nil
}

// Fail marks an in-flight optimistic entry as errored. The message stays
// visible so the user can retry; the store never silently drops an
// authored message.
func (t *Timeline) Fail(tempID string) error {
	return t.transition(tempID, chat.StateError)
}

// Retry moves an errored entry back to sending ahead of a resend attempt.
func (t *Timeline) Retry(tempID string) error {
	return t.transition(tempID, chat.StateSending)
}

// MarkDelivered applies a delivered receipt. Downward transitions are
// ignored, so out-of-order receipts are harmless.
func (t *Timeline) MarkDelivered(id string) error {
	return t.transition(id, chat.StateDelivered)
}

// MarkRead applies a read receipt.
func (t *Timeline) MarkRead(id string) error {
	return t.transition(id, chat.StateRead)
}

func (t *Timeline) transition(id string, target chat.DeliveryState) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos, ok := t.index[id]
	if !ok {
		return ErrUnknownMessage
	}
	entry := &t.order[pos]
	entry.Status = entry.Status.Advance(target)
	return nil
}

// Ingest inserts a message received from the backend that did not
// originate locally. Ingesting an id already present (the echo of one's
// own confirmed send, or a poll overlapping a push) is a no-op. Returns
// whether the message was added.
func (t *Timeline) Ingest(m chat.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.index[m.ID]; exists {
		return false
	}

	// Walk from the tail: arrivals are nearly always the newest message,
	// so this is O(1) in the common case. Existing entries keep their
	// relative order.
	pos := len(t.order)
	for pos > 0 && m.Before(t.order[pos-1]) {
		pos--
	}

	t.order = append(t.order, chat.Message{})
	copy(t.order[pos+1:], t.order[pos:])
	t.order[pos] = m
	for i := pos; i < len(t.order); i++ {
		t.index[t.order[i].ID] = i
	}
	return true
}

// Get returns a copy of the message with the given id.
func (t *Timeline) Get(id string) (chat.Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos, ok := t.index[id]
	if !ok {
		return chat.Message{}, false
	}
	return t.order[pos], true
}

// Len reports the number of messages in the timeline.
func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// Messages returns a snapshot of the timeline in rendered order.
func (t *Timeline) Messages() []chat.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]chat.Message, len(t.order))
	copy(out, t.order)
	return out
}

// GroupByDate yields (dateLabel, messages) pairs partitioned by the local
// calendar date of each message's CreatedAt, in timeline order. The
// sequence is lazy and restartable: each range re-walks the snapshot, and
// breaking early stops the walk.
func (t *Timeline) GroupByDate() iter.Seq2[string, []chat.Message] {
	snapshot := t.Messages()
	t.mu.Lock()
	loc := t.loc
	t.mu.Unlock()

	return func(yield func(string, []chat.Message) bool) {
		var (
			label string
			group []chat.Message
		)
		for _, m := range snapshot {
			day := m.CreatedAt.In(loc).Format("2006-01-02")
			if day != label {
				if len(group) > 0 && !yield(label, group) {
					return
				}
				label = day
				group = nil
			}
			group = append(group, m)
		}
		if len(group) > 0 {
			yield(label, group)
		}
	}
}

// removeAtLocked deletes the entry at pos and reindexes the tail.
func (t *Timeline) removeAtLocked(pos int) {
	delete(t.index, t.order[pos].ID)
	t.order = append(t.order[:pos], t.order[pos+1:]...)
	for i := pos; i < len(t.order); i++ {
		t.index[t.order[i].ID] = i
	}
}
