package services

// MailerSvc dispatches transactional email. Sends are fire-and-forget: they run
// asynchronously and delivery failures are logged, never surfaced to the request
// that triggered them.
type MailerSvc interface {
	SendVerificationEmail(toEmail, token string)
	SendPasswordResetEmail(toEmail, token string)
}
