// Package email delivers transactional mail in response to domain
// events. Domain modules publish events and never touch SMTP directly.
package email

import "context"

// Sender delivers transactional emails.
type Sender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName, dashboardURL string) error
}
