package service

import (
	"fmt"
	"log/slog"

	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
)

var _ port.ConfirmationReceiver = Archiver{}

// Archiver stores confirmation batches read back from the audit topic.
type Archiver struct {
	storage port.ConfirmationStorage
}

func NewArchiver(storage port.ConfirmationStorage) Archiver {
	const op = "NewArchiver"
	if storage == nil {
		panic(fmt.Errorf("%s: storage is nil", op))
	}
	return Archiver{storage}
}

func (a Archiver) ReceiveConfirmations(cs []domain.Confirmation) {
	const op = "Archiver.ReceiveConfirmations"
	log := slog.With("op", op)

	if len(cs) == 0 {
		return
	}

	if err := a.storage.Save(cs); err != nil {
		log.Error(
			"failed to archive confirmations",
			"count", len(cs), "err", fmt.Errorf("%s: %w", op, err),
		)
		return
	}
	log.Info("confirmations archived", "count", len(cs))
}
