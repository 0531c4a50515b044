package notify

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Notifier sends membership-related notifications. Delivery is fire and
// forget: failures are logged by Dispatch and never surfaced to the caller.
type Notifier interface {
	InvitationCreated(email, projectTitle, token string) error
	MemberAdded(email, projectTitle string, projectID uuid.UUID) error
}

// Dispatch runs a notification on its own goroutine so that a slow or
// failing delivery cannot block or fail the triggering operation.
func Dispatch(name string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("⚠️  notification %s panicked: %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			log.Printf("⚠️  notification %s failed: %v", name, err)
		}
	}()
}

// LogNotifier writes the would-be emails to the log. The real mail transport
// lives outside this system; this keeps the dispatch path exercised.
type LogNotifier struct {
	FrontendURL string
}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier(frontendURL string) *LogNotifier {
	return &LogNotifier{FrontendURL: frontendURL}
}

func (n *LogNotifier) InvitationCreated(email, projectTitle, token string) error {
	link := fmt.Sprintf("%s/invitations/accept?token=%s", n.FrontendURL, token)
	log.Printf("📧 invitation to %q for project %q: %s (expires in 7 days)", email, projectTitle, link)
	return nil
}

func (n *LogNotifier) MemberAdded(email, projectTitle string, projectID uuid.UUID) error {
	log.Printf("📧 %q added to project %q (%s/projects/%s)", email, projectTitle, n.FrontendURL, projectID)
	return nil
}
