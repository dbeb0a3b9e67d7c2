package notifications

import (
	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/artefact/buzz-dashboard/internal/tagging"
)

// NotificationInterface defines the contract for reviewer notifications
type NotificationInterface interface {
	SendSubmission(receipt *tagging.Receipt) error
	SendStatusChange(task *models.Task) error
}
