package scheduler

import (
	"context"
	"log"
	"time"

	"snowmail-backend/internal/inbox/domain"
	"snowmail-backend/internal/inbox/repository"
)

// AttachmentCleanupScheduler removes attachment blobs left behind by sync
// sessions that were never confirmed or discarded.
type AttachmentCleanupScheduler struct {
	ledgerRepo repository.AttachmentLedgerRepository
	store      domain.AttachmentStore
	maxAge     time.Duration
	interval   time.Duration
	stopChan   chan struct{}
}

// NewAttachmentCleanupScheduler creates a new scheduler
func NewAttachmentCleanupScheduler(
	ledgerRepo repository.AttachmentLedgerRepository,
	store domain.AttachmentStore,
	maxAge time.Duration,
) *AttachmentCleanupScheduler {
	return &AttachmentCleanupScheduler{
		ledgerRepo: ledgerRepo,
		store:      store,
		maxAge:     maxAge,
		interval:   1 * time.Hour,
		stopChan:   make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *AttachmentCleanupScheduler) Start() {
	log.Printf("[AttachmentCleanup] Starting attachment cleanup scheduler (interval: %v, max age: %v)", s.interval, s.maxAge)

	go func() {
		// Run immediately on start
		s.cleanupExpired()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.cleanupExpired()
			case <-s.stopChan:
				log.Println("[AttachmentCleanup] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *AttachmentCleanupScheduler) Stop() {
	close(s.stopChan)
}

// cleanupExpired deletes stored attachments older than maxAge along with
// their ledger rows.
func (s *AttachmentCleanupScheduler) cleanupExpired() {
	cutoff := time.Now().Add(-s.maxAge)

	entries, err := s.ledgerRepo.ListOlderThan(cutoff)
	if err != nil {
		log.Printf("[AttachmentCleanup] Error listing expired attachments: %v", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	log.Printf("[AttachmentCleanup] Found %d expired attachments", len(entries))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, entry := range entries {
		if err := s.store.Delete(ctx, entry.Name); err != nil {
			log.Printf("[AttachmentCleanup] Error deleting attachment %q: %v", entry.Name, err)
			continue
		}
		if err := s.ledgerRepo.RemoveByID(entry.ID); err != nil {
			log.Printf("[AttachmentCleanup] Error removing ledger entry %s: %v", entry.ID, err)
		}
	}
}
