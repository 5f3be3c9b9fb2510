package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

// Notification type constants
const (
	TypeTaskAssignment = "task-assignment"
	TypeTaskComplete   = "task-complete"
)

// Store is the persistence surface the notifier needs
type Store interface {
	SaveNotification(n *storage.NotificationRecord) error
}

// Notifier creates persisted notifications and fans them out to the
// realtime hub and, for assignments, to WhatsApp.
type Notifier struct {
	store     Store
	hub       *Hub
	whatsapp  *WhatsAppClient
	recipient string

	// now is swappable for tests
	now func() time.Time
}

// New creates a Notifier. whatsapp may be nil to disable template sends;
// recipient is the WhatsApp handle assignment messages go to.
func New(store Store, hub *Hub, whatsapp *WhatsAppClient, recipient string) *Notifier {
	return &Notifier{
		store:     store,
		hub:       hub,
		whatsapp:  whatsapp,
		recipient: recipient,
		now:       time.Now,
	}
}

// NotifyAssignment delivers the three-part assignment notification:
// WhatsApp template, persisted record, realtime push.
func (n *Notifier) NotifyAssignment(ctx context.Context, t *storage.TaskRecord, assignee, creator *storage.EmployeeRecord) error {
	if n.whatsapp != nil {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("02 Jan 2006")
		}
		params := []string{assignee.Name, creator.Name, t.Description, due}
		if err := n.whatsapp.SendTemplate(ctx, n.recipient, params); err != nil {
			return err
		}
	}

	rec := &storage.NotificationRecord{
		ID:             storage.GenerateID(),
		Type:           TypeTaskAssignment,
		Message:        "New task is assigned for you",
		FromEmployeeID: creator.ID,
		ToEmployeeID:   assignee.ID,
		Status:         storage.NotificationUnseen,
		Meta:           map[string]any{"taskId": t.ID},
		CreatedAt:      n.now(),
	}
	if err := n.store.SaveNotification(rec); err != nil {
		return err
	}

	n.hub.Publish(assignee.ID, rec)
	return nil
}

// NotifyCompletion tells the task creator the task is done
func (n *Notifier) NotifyCompletion(ctx context.Context, t *storage.TaskRecord, assigneeName, feedback string) error {
	from := ""
	if len(t.AssignedTo) > 0 {
		from = t.AssignedTo[0]
	}

	rec := &storage.NotificationRecord{
		ID:   storage.GenerateID(),
		Type: TypeTaskComplete,
		Message: fmt.Sprintf("Task Completed by %s - %s (%s), FeedBack:%s",
			assigneeName, t.TaskName, t.Description, feedback),
		FromEmployeeID: from,
		ToEmployeeID:   t.CreatedBy,
		Status:         storage.NotificationUnseen,
		Meta:           map[string]any{"taskId": t.ID},
		CreatedAt:      n.now(),
	}
	if err := n.store.SaveNotification(rec); err != nil {
		return err
	}

	n.hub.Publish(t.CreatedBy, rec)
	return nil
}
