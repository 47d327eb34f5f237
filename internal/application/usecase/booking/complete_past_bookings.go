// Package booking contains booking-related use cases.
package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// DefaultSweepBatchSize is used when no positive batch size is configured.
const DefaultSweepBatchSize = 100

// CompletePastBookingsOutput summarizes one sweep.
type CompletePastBookingsOutput struct {
	Completed int
	Failed    int
}

// CompletePastBookingsUseCase completes every confirmed booking whose stay has ended.
type CompletePastBookingsUseCase struct {
	bookingRepo adapter.BookingRepository
	batchSize   int
	clock       entity.Clock
}

// NewCompletePastBookingsUseCase creates a new CompletePastBookingsUseCase instance.
func NewCompletePastBookingsUseCase(bookingRepo adapter.BookingRepository, batchSize int, clock entity.Clock) *CompletePastBookingsUseCase {
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}
	if clock == nil {
		clock = entity.SystemClock
	}
	return &CompletePastBookingsUseCase{
		bookingRepo: bookingRepo,
		batchSize:   batchSize,
		clock:       clock,
	}
}

// Execute runs one sweep. A booking that fails to complete is logged and skipped.
func (uc *CompletePastBookingsUseCase) Execute(ctx context.Context) (*CompletePastBookingsOutput, error) {
	bookings, err := uc.bookingRepo.FindConfirmedEndedBefore(ctx, uc.clock(), uc.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to find ended bookings: %w", err)
	}

	out := &CompletePastBookingsOutput{}
	for _, booking := range bookings {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		if err := booking.Complete(); err != nil {
			slog.Warn("Failed to complete booking", "bookingID", booking.ID(), "error", err)
			out.Failed++
			continue
		}
		if err := uc.bookingRepo.Update(ctx, booking); err != nil {
			slog.Error("Failed to store completed booking", "bookingID", booking.ID(), "error", err)
			out.Failed++
			continue
		}
		out.Completed++
	}

	if out.Completed > 0 || out.Failed > 0 {
		slog.Info("Completion sweep finished", "completed", out.Completed, "failed", out.Failed)
	}

	return out, nil
}
