package services

// EmailSender delivers a message with a plain-text body and an optional HTML
// alternative. An empty htmlBody sends text only.
type EmailSender interface {
	Send(to string, subject string, textBody string, htmlBody string) error
}
