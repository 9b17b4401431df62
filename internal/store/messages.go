package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/google/uuid"
)

type CreateMessageRequest struct {
	Subject      string
	Body         string
	TrackingCode string
	ContainerID  *int64
	SenderID     int64
	RecipientIDs []int64
}

// RecipientKey is how an employee id is keyed inside a message's
// recipient state map.
func RecipientKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func scanMessage(row interface{ Scan(...interface{}) error }) (*models.Message, error) {
	message := &models.Message{}
	var recipientsJSON []byte

	err := row.Scan(
		&message.ID,
		&message.Subject,
		&message.Body,
		&message.TrackingCode,
		&message.ContainerID,
		&message.SenderID,
		&recipientsJSON,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(recipientsJSON, &message.Recipients); err != nil {
		return nil, fmt.Errorf("decode recipients: %w", err)
	}

	return message, nil
}

const messageColumns = `id, subject, body, tracking_code, container_id, sender_id, recipients, created_at`

func CreateMessage(ctx context.Context, db *sql.DB, req CreateMessageRequest) (*models.Message, error) {
	if len(req.RecipientIDs) == 0 {
		return nil, fmt.Errorf("message needs at least one recipient")
	}

	recipients := make(map[string]models.RecipientState, len(req.RecipientIDs))
	for _, id := range req.RecipientIDs {
		recipients[RecipientKey(id)] = models.RecipientState{}
	}

	recipientsJSON, err := json.Marshal(recipients)
	if err != nil {
		return nil, fmt.Errorf("encode recipients: %w", err)
	}

	query := `
		INSERT INTO messages (id, subject, body, tracking_code, container_id, sender_id, recipients, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + messageColumns

	message, err := scanMessage(db.QueryRowContext(ctx, query,
		uuid.New(), req.Subject, req.Body, req.TrackingCode, req.ContainerID, req.SenderID, recipientsJSON))
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	return message, nil
}

func GetMessage(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	message, err := scanMessage(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrMessageNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}

	return message, nil
}

// ListInbox returns messages addressed to the recipient that they have
// not deleted, newest first.
func ListInbox(ctx context.Context, db *sql.DB, recipientID int64) ([]models.Message, error) {
	key := RecipientKey(recipientID)

	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE recipients ? $1
		  AND NOT COALESCE((recipients -> $1 ->> 'deleted')::boolean, FALSE)
		ORDER BY created_at DESC, id`

	rows, err := db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, *message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return messages, nil
}

// setRecipientFlag rewrites only the caller's entry in the recipient map.
func setRecipientFlag(ctx context.Context, db *sql.DB, messageID uuid.UUID, recipientID int64, flag string, value bool) (*models.Message, error) {
	key := RecipientKey(recipientID)

	query := `
		UPDATE messages
		SET recipients = jsonb_set(recipients, ARRAY[$1, $2], to_jsonb($3::boolean))
		WHERE id = $4 AND recipients ? $1
		RETURNING ` + messageColumns

	message, err := scanMessage(db.QueryRowContext(ctx, query, key, flag, value, messageID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrMessageNotFound
		}
		return nil, fmt.Errorf("set recipient %s flag: %w", flag, err)
	}

	return message, nil
}

func MarkMessageRead(ctx context.Context, db *sql.DB, messageID uuid.UUID, recipientID int64) (*models.Message, error) {
	return setRecipientFlag(ctx, db, messageID, recipientID, "read", true)
}

func ToggleMessageStar(ctx context.Context, db *sql.DB, messageID uuid.UUID, recipientID int64) (*models.Message, error) {
	key := RecipientKey(recipientID)

	query := `
		UPDATE messages
		SET recipients = jsonb_set(recipients, ARRAY[$1, 'starred'],
			to_jsonb(NOT COALESCE((recipients -> $1 ->> 'starred')::boolean, FALSE)))
		WHERE id = $2 AND recipients ? $1
		RETURNING ` + messageColumns

	message, err := scanMessage(db.QueryRowContext(ctx, query, key, messageID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrMessageNotFound
		}
		return nil, fmt.Errorf("toggle message star: %w", err)
	}

	return message, nil
}

// DeleteMessageForRecipient hides the message from one recipient's inbox;
// the row itself stays for everyone else.
func DeleteMessageForRecipient(ctx context.Context, db *sql.DB, messageID uuid.UUID, recipientID int64) error {
	_, err := setRecipientFlag(ctx, db, messageID, recipientID, "deleted", true)
	return err
}
