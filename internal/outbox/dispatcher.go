package outbox

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/barberking/booking-api/internal/notify"
)

const (
	pollEvery   = 5 * time.Second
	batchSize   = 20
	maxAttempts = 5
)

// Dispatcher drains pending outbox rows and delivers them through the
// notifier. It runs detached from request handling: a transition commits
// first, delivery follows whenever the next poll picks the row up.
type Dispatcher struct {
	repo   *Repository
	sender notify.Notifier
}

func NewDispatcher(repo *Repository, sender notify.Notifier) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		sender: sender,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(pollEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.drain(ctx)
			}
		}
	}()
}

func (d *Dispatcher) drain(ctx context.Context) {
	msgs, err := d.repo.ListPending(ctx, batchSize)
	if err != nil {
		log.Println("outbox poll error:", err)
		return
	}

	for _, msg := range msgs {
		var buttons []notify.Button
		if msg.Buttons != "" {
			if err := json.Unmarshal([]byte(msg.Buttons), &buttons); err != nil {
				log.Printf("outbox message %d has bad buttons payload: %v", msg.ID, err)
				buttons = nil
			}
		}

		if err := d.sender.SendMessage(ctx, msg.ChatID, msg.Text, buttons); err != nil {
			log.Printf("outbox delivery failed for message %d: %v", msg.ID, err)
			if err := d.repo.MarkAttemptFailed(
				ctx, msg.ID, msg.Attempts+1, maxAttempts, err.Error(),
			); err != nil {
				log.Println("outbox mark failed error:", err)
			}
			continue
		}

		if err := d.repo.MarkSent(ctx, msg.ID, time.Now()); err != nil {
			log.Println("outbox mark sent error:", err)
		}
	}
}
