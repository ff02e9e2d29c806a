package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"tableside/analytics-svc/internal/domain"
)

const readRetryDelay = time.Second

type Consumer struct {
	Reader   MessageReader
	Store    StoreInterface
	Location *time.Location
	Now      func() time.Time
}

func NewConsumer(reader MessageReader, store StoreInterface, loc *time.Location) *Consumer {
	if loc == nil {
		loc = time.Local
	}
	return &Consumer{
		Reader:   reader,
		Store:    store,
		Location: loc,
		Now:      time.Now,
	}
}

// Start reads order changes until ctx is cancelled or the reader is closed.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("[analytics-svc] Starting order changes consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				log.Println("[analytics-svc] Consumer stopped")
				return
			}
			log.Printf("[analytics-svc] Error reading message: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var change domain.OrderChange
		if err := json.Unmarshal(message.Value, &change); err != nil {
			log.Printf("[analytics-svc] Error unmarshaling message at offset %d: %v", message.Offset, err)
			continue
		}

		if err := c.ProcessChange(ctx, change); err != nil {
			log.Printf("[analytics-svc] Error processing order %s: %v", change.OrderID, err)
		}
	}
}

// ProcessChange counts the dishes of a newly created order towards the day it
// was placed. Every other change is ignored.
func (c *Consumer) ProcessChange(ctx context.Context, change domain.OrderChange) error {
	if change.Table != domain.TableOrders || change.Op != domain.OpInsert || change.OrderID == "" {
		return nil
	}

	lines, err := c.Store.OrderLines(change.OrderID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	first, err := c.Store.MarkCounted(ctx, change.OrderID)
	if err != nil {
		return err
	}
	if !first {
		log.Printf("[analytics-svc] Order %s already counted, skipping", change.OrderID)
		return nil
	}

	at := change.At
	if at.IsZero() {
		at = c.Now()
	}
	date := at.In(c.Location).Format(dateLayout)

	if err := c.Store.IncrementDaily(ctx, date, lines); err != nil {
		return err
	}
	log.Printf("[analytics-svc] Counted %d lines of order %s for %s", len(lines), change.OrderID, date)
	return nil
}
