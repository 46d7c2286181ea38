package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

const (
	recordKeyPrefix  = "reminder:record:"
	entriesKeyPrefix = "reminder:entries:"
	handlesKeyPrefix = "reminder:handles:"
)

// Persisted state is user-owned configuration, so no TTLs: records live
// until an explicit delete.

type reminderRepository struct {
	client *redis.Client
}

func NewReminderRepository(client *redis.Client) domain.ReminderRepository {
	return &reminderRepository{
		client: client,
	}
}

func (r *reminderRepository) SaveReminder(ctx context.Context, record *domain.ReminderRecord) error {
	if record == nil {
		return ErrInvalidRecordData
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidRecordData
	}

	return r.client.Set(ctx, recordKeyPrefix+record.Category.String(), data, 0).Err()
}

func (r *reminderRepository) GetReminder(ctx context.Context, category domain.Category) (*domain.ReminderRecord, error) {
	data, err := r.client.Get(ctx, recordKeyPrefix+category.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}

	var record domain.ReminderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidRecordData
	}

	return &record, nil
}

func (r *reminderRepository) DeleteReminder(ctx context.Context, category domain.Category) error {
	return r.client.Del(ctx, recordKeyPrefix+category.String()).Err()
}

func (r *reminderRepository) SaveEntry(ctx context.Context, category domain.Category, entry *domain.Entry) error {
	if entry == nil || entry.ID == "" {
		return ErrInvalidEntryData
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return ErrInvalidEntryData
	}

	return r.client.HSet(ctx, entriesKeyPrefix+category.String(), entry.ID, data).Err()
}

func (r *reminderRepository) GetEntry(ctx context.Context, category domain.Category, entryID string) (*domain.Entry, error) {
	data, err := r.client.HGet(ctx, entriesKeyPrefix+category.String(), entryID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	var entry domain.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, ErrInvalidEntryData
	}

	return &entry, nil
}

func (r *reminderRepository) ListEntries(ctx context.Context, category domain.Category) ([]domain.Entry, error) {
	raw, err := r.client.HGetAll(ctx, entriesKeyPrefix+category.String()).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(raw))
	for _, data := range raw {
		var entry domain.Entry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, ErrInvalidEntryData
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *reminderRepository) DeleteEntry(ctx context.Context, category domain.Category, entryID string) error {
	removed, err := r.client.HDel(ctx, entriesKeyPrefix+category.String(), entryID).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *reminderRepository) DeleteAllEntries(ctx context.Context, category domain.Category) error {
	return r.client.Del(ctx, entriesKeyPrefix+category.String()).Err()
}

func (r *reminderRepository) ReplaceHandles(ctx context.Context, category domain.Category, batchID string, handles []domain.Handle) error {
	key := handlesKeyPrefix + category.String()

	if len(handles) == 0 {
		return r.client.HDel(ctx, key, batchID).Err()
	}

	data, err := json.Marshal(handles)
	if err != nil {
		return ErrInvalidHandleData
	}

	return r.client.HSet(ctx, key, batchID, data).Err()
}

func (r *reminderRepository) AppendHandles(ctx context.Context, category domain.Category, batchID string, handles []domain.Handle) error {
	if len(handles) == 0 {
		return nil
	}

	existing, err := r.GetHandles(ctx, category, batchID)
	if err != nil {
		return err
	}

	return r.ReplaceHandles(ctx, category, batchID, append(existing, handles...))
}

func (r *reminderRepository) GetHandles(ctx context.Context, category domain.Category, batchID string) ([]domain.Handle, error) {
	data, err := r.client.HGet(ctx, handlesKeyPrefix+category.String(), batchID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var handles []domain.Handle
	if err := json.Unmarshal(data, &handles); err != nil {
		return nil, ErrInvalidHandleData
	}

	return handles, nil
}

func (r *reminderRepository) GetAllHandles(ctx context.Context, category domain.Category) ([]domain.Handle, error) {
	raw, err := r.client.HGetAll(ctx, handlesKeyPrefix+category.String()).Result()
	if err != nil {
		return nil, err
	}

	var handles []domain.Handle
	for _, data := range raw {
		var batch []domain.Handle
		if err := json.Unmarshal([]byte(data), &batch); err != nil {
			return nil, ErrInvalidHandleData
		}
		handles = append(handles, batch...)
	}

	return handles, nil
}

func (r *reminderRepository) ClearHandles(ctx context.Context, category domain.Category) error {
	return r.client.Del(ctx, handlesKeyPrefix+category.String()).Err()
}
