package email

// Attachment is a file to attach to an outgoing email
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// SendEmailRequest represents a request to send an email
type SendEmailRequest struct {
	FromAddress string `json:"from_address" validate:"omitempty,email"`
	ToAddress   string `json:"to_address" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Text        string `json:"text" validate:"required"`
	Attachments []Attachment
}

// SendEmailResponse represents the response from sending an email
type SendEmailResponse struct {
	MessageID string
	Success   bool
	Error     string
}
