package payments

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
)

type Subscription struct {
	UserID    int       `json:"user_id" db:"user_id"`
	Plan      string    `json:"plan" db:"plan"`
	Status    string    `json:"status" db:"status"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type SubscriptionRepository struct {
	repository *repository.Repository
}

func NewSubscriptionRepository(r *repository.Repository) *SubscriptionRepository {
	return &SubscriptionRepository{repository: r}
}

// UpsertFromEvent mirrors the provider's view of a user's subscription. The
// provider owns the state; we only cache the latest snapshot.
func (r *SubscriptionRepository) UpsertFromEvent(userID int, plan string, status string) error {
	query := r.repository.GoquDBWrapper.Insert("subscriptions").
		Rows(goqu.Record{
			"user_id":    userID,
			"plan":       plan,
			"status":     status,
			"updated_at": time.Now(),
		}).
		OnConflict(goqu.DoUpdate("user_id", goqu.Record{
			"plan":       plan,
			"status":     status,
			"updated_at": time.Now(),
		}))

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) GetSubscription(userID int) (*Subscription, error) {
	var subscription Subscription
	query := r.repository.GoquDBWrapper.
		Select("user_id", "plan", "status", "updated_at").
		From("subscriptions").
		Where(goqu.Ex{"user_id": userID})

	found, err := query.Executor().ScanStruct(&subscription)
	if err != nil {
		return nil, fmt.Errorf("unable to select subscription: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("subscription for user %d not found", userID)
	}

	return &subscription, nil
}
