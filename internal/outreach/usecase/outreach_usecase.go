package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apprepo "snowmail-backend/internal/application/repository"
	appusecase "snowmail-backend/internal/application/usecase"
	inboxdomain "snowmail-backend/internal/inbox/domain"
	"snowmail-backend/internal/outreach/domain"
	"snowmail-backend/pkg/ai"
	"snowmail-backend/pkg/crypto"
	"snowmail-backend/pkg/smtp"
)

// outreachUsecase implements OutreachUsecase
type outreachUsecase struct {
	aiService     ai.Service
	sender        *smtp.Sender
	profileRepo   apprepo.UserProfileRepository
	progress      appusecase.ProgressUsecase
	encryptionKey string
	httpClient    *http.Client
}

// NewOutreachUsecase creates a new instance of outreachUsecase
func NewOutreachUsecase(
	aiService ai.Service,
	sender *smtp.Sender,
	profileRepo apprepo.UserProfileRepository,
	progress appusecase.ProgressUsecase,
	encryptionKey string,
) OutreachUsecase {
	return &outreachUsecase{
		aiService:     aiService,
		sender:        sender,
		profileRepo:   profileRepo,
		progress:      progress,
		encryptionKey: encryptionKey,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (u *outreachUsecase) GenerateEmail(ctx context.Context, req domain.GenerateEmailRequest) (string, error) {
	return u.aiService.GenerateApplicationEmail(ctx, ai.EmailGenerationRequest{
		CompanyName:    req.CompanyName,
		JobDescription: req.JobDescription,
		RecruiterName:  req.RecruiterName,
		ApplicantName:  req.ApplicantName,
		ResumeText:     req.ResumeText,
	})
}

func (u *outreachUsecase) SendEmail(ctx context.Context, userID string, req domain.SendEmailRequest) error {
	account, password, err := u.credentials(userID)
	if err != nil {
		return err
	}

	attachments, err := u.fetchAttachments(ctx, req.Attachments)
	if err != nil {
		return err
	}

	msg := &smtp.Message{
		From:        account,
		To:          req.RecipientEmail,
		Subject:     req.Subject,
		Body:        req.Body,
		Attachments: attachments,
	}
	if err := u.sender.Send(account, password, msg); err != nil {
		return err
	}

	// The email is out; start tracking the application.
	return u.progress.CreateJobApplication(userID, req.JobTitle, req.CompanyName, req.RecipientEmail)
}

// fetchAttachments downloads the referenced documents so they can be embedded
// in the outgoing message.
func (u *outreachUsecase) fetchAttachments(ctx context.Context, refs []domain.AttachmentRef) ([]smtp.Attachment, error) {
	var attachments []smtp.Attachment
	for _, ref := range refs {
		httpReq, err := http.NewRequestWithContext(ctx, "GET", ref.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid attachment URL for %q: %w", ref.Name, err)
		}

		resp, err := u.httpClient.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("failed to download attachment %q: %w", ref.Name, err)
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %q: %w", ref.Name, err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download attachment %q: status %d", ref.Name, resp.StatusCode)
		}

		attachments = append(attachments, smtp.Attachment{Name: ref.Name, Data: data})
	}
	return attachments, nil
}

func (u *outreachUsecase) credentials(userID string) (string, string, error) {
	account, err := u.profileRepo.GetLinkedAccount(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to read linked account: %w", err)
	}
	if account == "" {
		return "", "", inboxdomain.ErrMailboxNotLinked
	}

	encrypted, err := u.profileRepo.GetAppPassword(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to read app password: %w", err)
	}
	if encrypted == "" {
		return "", "", inboxdomain.ErrMailboxNotLinked
	}

	password, err := crypto.Decrypt(encrypted, u.encryptionKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt app password: %w", err)
	}
	return account, password, nil
}
