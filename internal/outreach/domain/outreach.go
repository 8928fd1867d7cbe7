package domain

// GenerateEmailRequest carries the inputs for drafting an application email.
type GenerateEmailRequest struct {
	CompanyName    string `json:"company_name" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
	RecruiterName  string `json:"recruiter_name" binding:"required"`
	ApplicantName  string `json:"applicant_name" binding:"required"`
	ResumeText     string `json:"resume_text"`
}

// AttachmentRef points at a stored document to attach to an outgoing email.
type AttachmentRef struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

// SendEmailRequest carries an application email to send plus the application
// details to record once it is out.
type SendEmailRequest struct {
	RecipientEmail string          `json:"recipient_email" binding:"required,email"`
	Subject        string          `json:"subject" binding:"required"`
	Body           string          `json:"body" binding:"required"`
	JobTitle       string          `json:"job_title" binding:"required"`
	CompanyName    string          `json:"company_name" binding:"required"`
	Attachments    []AttachmentRef `json:"attachments"`
}
