package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) OpenConversation(ctx context.Context, c chat.Conversation) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	// The DO UPDATE is a no-op write that makes RETURNING yield the
	// existing row on conflict.
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (participant_a, participant_b)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (participant_a, participant_b)
		DO UPDATE SET participant_a = EXCLUDED.participant_a
		RETURNING id::text, participant_a::text, participant_b::text, created_at
	`, c.ParticipantA, c.ParticipantB).Scan(&c.ID, &c.ParticipantA, &c.ParticipantB, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgChatRepository) GetConversation(ctx context.Context, id string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, participant_a::text, participant_b::text, created_at
		FROM conversations
		WHERE id = $1::uuid
	`, id).Scan(&c.ID, &c.ParticipantA, &c.ParticipantB, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrConversationMissing
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgChatRepository) ListConversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.participant_a::text, c.participant_b::text, c.created_at,
		       m.id::text, m.sender_id::text, m.receiver_id::text, m.body, m.kind, m.status, m.created_at
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, sender_id, receiver_id, body, kind, status, created_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) m ON true
		WHERE c.participant_a = $1::uuid OR c.participant_b = $1::uuid
		ORDER BY COALESCE(m.created_at, c.created_at) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		var (
			c         chat.Conversation
			mID       *string
			mSender   *string
			mReceiver *string
			mBody     *string
			mKind     *int16
			mStatus   *int16
			mCreated  *time.Time
		)
		if err := rows.Scan(&c.ID, &c.ParticipantA, &c.ParticipantB, &c.CreatedAt,
			&mID, &mSender, &mReceiver, &mBody, &mKind, &mStatus, &mCreated); err != nil {
			return nil, err
		}
		if mID != nil {
			c.LastMessage = &chat.Message{
				ID:             *mID,
				ConversationID: c.ID,
				SenderID:       *mSender,
				ReceiverID:     *mReceiver,
				Body:           *mBody,
				Kind:           chat.MessageKind(*mKind),
				Status:         chat.DeliveryState(*mStatus),
				CreatedAt:      *mCreated,
			}
		}
		convs = append(convs, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return convs, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, receiver_id, body, kind, status)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6)
		RETURNING id::text, created_at
	`, m.ConversationID, m.SenderID, m.ReceiverID, m.Body, int16(m.Kind), int16(chat.StateSent)).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Status = chat.StateSent
	return &m, nil
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, receiver_id::text, body, kind, status, created_at
		FROM messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var (
			m      chat.Message
			kind   int16
			status int16
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.ReceiverID, &m.Body, &kind, &status, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Kind = chat.MessageKind(kind)
		m.Status = chat.DeliveryState(status)
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) AdvanceStatus(ctx context.Context, conversationID string, receiverID string, messageIDs []string, target chat.DeliveryState) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	if len(messageIDs) == 0 {
		return 0, nil
	}
	// status < target keeps the transition monotonic: a late "delivered"
	// receipt never downgrades a message already marked read.
	ct, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET status = $4
		WHERE conversation_id = $1::uuid
		  AND receiver_id = $2::uuid
		  AND id = ANY($3::uuid[])
		  AND status >= 1 AND status < $4
	`, conversationID, receiverID, messageIDs, int16(target))
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
