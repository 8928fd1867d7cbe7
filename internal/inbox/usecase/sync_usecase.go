package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	appdomain "snowmail-backend/internal/application/domain"
	apprepo "snowmail-backend/internal/application/repository"
	appusecase "snowmail-backend/internal/application/usecase"
	"snowmail-backend/internal/inbox/domain"
	"snowmail-backend/internal/inbox/repository"
	"snowmail-backend/pkg/crypto"
)

// syncUsecase implements SyncUsecase
type syncUsecase struct {
	scanner       domain.MailboxScanner
	classifier    domain.StatusClassifier
	store         domain.AttachmentStore
	ledgerRepo    repository.AttachmentLedgerRepository
	appRepo       apprepo.JobApplicationRepository
	profileRepo   apprepo.UserProfileRepository
	progress      appusecase.ProgressUsecase
	encryptionKey string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewSyncUsecase creates a new instance of syncUsecase
func NewSyncUsecase(
	scanner domain.MailboxScanner,
	classifier domain.StatusClassifier,
	store domain.AttachmentStore,
	ledgerRepo repository.AttachmentLedgerRepository,
	appRepo apprepo.JobApplicationRepository,
	profileRepo apprepo.UserProfileRepository,
	progress appusecase.ProgressUsecase,
	encryptionKey string,
) SyncUsecase {
	return &syncUsecase{
		scanner:       scanner,
		classifier:    classifier,
		store:         store,
		ledgerRepo:    ledgerRepo,
		appRepo:       appRepo,
		profileRepo:   profileRepo,
		progress:      progress,
		encryptionKey: encryptionKey,
		locks:         make(map[string]*sync.Mutex),
	}
}

// lockFor returns the per-user sync lock, creating it on first use.
func (u *syncUsecase) lockFor(userID string) *sync.Mutex {
	u.locksMu.Lock()
	defer u.locksMu.Unlock()

	lock, ok := u.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[userID] = lock
	}
	return lock
}

func (u *syncUsecase) Sync(ctx context.Context, userID string) ([]domain.ClassifiedEmail, error) {
	lock := u.lockFor(userID)
	if !lock.TryLock() {
		return nil, domain.ErrSyncInProgress
	}
	defer lock.Unlock()

	account, password, err := u.credentials(userID)
	if err != nil {
		return nil, err
	}

	apps, err := u.appRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	// Nothing to track yet. Anchor the checkpoint so a future first scan
	// starts from here instead of the whole mailbox history.
	if len(apps) == 0 {
		if err := u.profileRepo.SetRefreshTime(userID, time.Now()); err != nil {
			return nil, fmt.Errorf("failed to initialize refresh time: %w", err)
		}
		return nil, nil
	}

	trackedSenders, err := u.trackedSenders(apps)
	if err != nil {
		return nil, err
	}

	checkpoint, err := u.profileRepo.GetRefreshTime(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh time: %w", err)
	}

	emails, err := u.scanner.Scan(ctx, account, password, checkpoint, trackedSenders)
	if err != nil {
		return nil, err
	}

	for _, email := range emails {
		for _, att := range email.Attachments {
			if err := u.ledgerRepo.Record(userID, att.Name, att.URL); err != nil {
				log.Printf("[Sync] Failed to record attachment %q: %v", att.Name, err)
			}
		}
	}

	return u.classifyAll(ctx, userID, emails), nil
}

// classifyAll attaches a suggested status and matching applications to each
// scanned email. Classification failures degrade to OTHER instead of failing
// the sync.
func (u *syncUsecase) classifyAll(ctx context.Context, userID string, emails []domain.ScannedEmail) []domain.ClassifiedEmail {
	var classified []domain.ClassifiedEmail
	for _, email := range emails {
		label, err := u.classifier.ClassifyApplicationStatus(ctx, email.Body)
		if err != nil {
			log.Printf("[Sync] Classification failed for email from %s: %v", email.SenderEmail, err)
			label = "OTHER"
		}
		statusID := appdomain.ParseStatusLabel(label)

		matching, err := u.progress.CorrespondingJobs(userID, email.SenderEmail)
		if err != nil {
			log.Printf("[Sync] Failed to resolve matching jobs for %s: %v", email.SenderEmail, err)
		}

		classified = append(classified, domain.ClassifiedEmail{
			ScannedEmail:      email,
			SuggestedStatusID: statusID,
			SuggestedStatus:   appdomain.StatusLabel(statusID),
			MatchingJobs:      matching,
		})
	}
	return classified
}

func (u *syncUsecase) ConfirmStatus(ctx context.Context, userID, appID string, statusID int, attachmentNames []string) error {
	if err := u.progress.ApplyStatus(userID, appID, statusID); err != nil {
		return err
	}
	u.cleanupAttachments(ctx, userID, attachmentNames)
	return nil
}

func (u *syncUsecase) DiscardEmail(ctx context.Context, userID string, attachmentNames []string) error {
	u.cleanupAttachments(ctx, userID, attachmentNames)
	return nil
}

func (u *syncUsecase) CompleteSync(userID string) error {
	return u.profileRepo.SetRefreshTime(userID, time.Now())
}

// cleanupAttachments deletes stored attachment blobs and their ledger rows.
// Failures are logged; the cleanup scheduler retries leftovers later.
func (u *syncUsecase) cleanupAttachments(ctx context.Context, userID string, names []string) {
	for _, name := range names {
		if err := u.store.Delete(ctx, name); err != nil {
			log.Printf("[Sync] Failed to delete attachment %q: %v", name, err)
			continue
		}
		if err := u.ledgerRepo.Remove(userID, name); err != nil {
			log.Printf("[Sync] Failed to remove attachment ledger entry %q: %v", name, err)
		}
	}
}

// credentials loads and decrypts the user's mailbox login.
func (u *syncUsecase) credentials(userID string) (string, string, error) {
	account, err := u.profileRepo.GetLinkedAccount(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to read linked account: %w", err)
	}
	if account == "" {
		return "", "", domain.ErrMailboxNotLinked
	}

	encrypted, err := u.profileRepo.GetAppPassword(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to read app password: %w", err)
	}
	if encrypted == "" {
		return "", "", domain.ErrMailboxNotLinked
	}

	password, err := crypto.Decrypt(encrypted, u.encryptionKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt app password: %w", err)
	}
	return account, password, nil
}

// trackedSenders collects the distinct recruiter addresses behind a user's
// applications.
func (u *syncUsecase) trackedSenders(apps []*appdomain.JobApplication) ([]string, error) {
	seen := make(map[uint]struct{}, len(apps))
	var senders []string
	for _, app := range apps {
		if _, ok := seen[app.RecruiterID]; ok {
			continue
		}
		seen[app.RecruiterID] = struct{}{}

		email, err := u.appRepo.RecruiterEmail(app.RecruiterID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve recruiter %d: %w", app.RecruiterID, err)
		}
		senders = append(senders, email)
	}
	return senders, nil
}
