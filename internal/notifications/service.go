package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/artefact/buzz-dashboard/internal/tagging"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service sends reviewer notifications to Teams and email. Channels without
// configuration are skipped.
type Service struct {
	config *config.Config
	client *resty.Client
	send   func(m *gomail.Message) error
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// notice is the channel-neutral content of one notification
type notice struct {
	Subject string
	Summary string
	Facts   []TeamsFact
	SentAt  time.Time
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	s := &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
	s.send = s.dialAndSend
	return s
}

// Enabled reports whether any channel is configured
func (s *Service) Enabled() bool {
	return s.config.TeamsWebhookURL != "" || s.config.NotificationEmail != ""
}

// SendSubmission tells reviewers a tagging task is waiting for approval
func (s *Service) SendSubmission(receipt *tagging.Receipt) error {
	review := receipt.Review
	facts := []TeamsFact{
		{Name: "Submitter", Value: receipt.Submitter},
		{Name: "Time Range", Value: review.TimeRange},
		{Name: "Theme", Value: review.Theme},
		{Name: "Selected Tags", Value: review.SelectedTags},
		{Name: "Metrics Criteria", Value: review.MetricsCriteria},
		{Name: "Tag", Value: review.TagName},
		{Name: "Processing Mode", Value: review.ProcessingMode},
		{Name: "Schedule", Value: review.Schedule},
	}
	if review.NextRun != nil {
		facts = append(facts, TeamsFact{Name: "Next Run", Value: review.NextRun.Format("2006-01-02 15:04 MST")})
	}

	return s.dispatch(notice{
		Subject: fmt.Sprintf("Auto Tagging Task Submitted - %s", receipt.TaskName),
		Summary: receipt.Description,
		Facts:   facts,
		SentAt:  receipt.SubmittedAt,
	})
}

// SendStatusChange tells reviewers a task moved to a new status
func (s *Service) SendStatusChange(task *models.Task) error {
	return s.dispatch(notice{
		Subject: fmt.Sprintf("Auto Tagging Task %s - %s", statusTitle(task.Status), task.Name),
		Summary: fmt.Sprintf("%s is now %s.", task.Name, task.Status),
		Facts: []TeamsFact{
			{Name: "Tag", Value: task.Details.TagName},
			{Name: "Theme", Value: task.Details.Theme},
			{Name: "Submitter", Value: task.Submitter},
			{Name: "Reviewer", Value: task.Reviewer},
			{Name: "Schedule", Value: task.Details.Schedule},
		},
		SentAt: task.UpdatedAt,
	})
}

func (s *Service) dispatch(n notice) error {
	var errors []string

	// Send to Teams if configured
	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(n); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Infof("Sent %q to Teams", n.Subject)
		}
	}

	// Send via email if configured
	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(n); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Infof("Sent %q via email", n.Subject)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(n notice) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(buildTeamsMessage(n)).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func buildTeamsMessage(n notice) *TeamsMessage {
	return &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   n.Subject,
		Text:    n.Summary,
		Sections: []TeamsSection{{
			ActivityTitle:    "Details",
			ActivitySubtitle: n.SentAt.Format("2006-01-02 15:04:05 UTC"),
			Facts:            n.Facts,
			Markdown:         true,
		}},
	}
}

func (s *Service) sendEmail(n notice) error {
	htmlBody, err := buildEmailHTML(n)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", buildEmailText(n))
	m.AddAlternative("text/html", htmlBody)

	return s.send(m)
}

func (s *Service) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

var emailTemplate = template.Must(template.New("email").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #1f2937; color: white; padding: 20px; border-radius: 5px; }
        .facts { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Subject}}</h1>
        <p>{{.SentAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <p>{{.Summary}}</p>

    <div class="facts">
    {{range .Facts}}
        <p><strong>{{.Name}}:</strong> {{.Value}}</p>
    {{end}}
    </div>

    <hr>
    <p><small>This message was sent automatically by the Buzz Dashboard.</small></p>
</body>
</html>
`))

func buildEmailHTML(n notice) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildEmailText(n notice) string {
	var text strings.Builder

	text.WriteString(n.Subject + "\n")
	text.WriteString(fmt.Sprintf("Sent: %s\n\n", n.SentAt.Format("2006-01-02 15:04:05 UTC")))
	text.WriteString(n.Summary + "\n\n")

	for _, f := range n.Facts {
		text.WriteString(fmt.Sprintf("%s: %s\n", f.Name, f.Value))
	}

	text.WriteString("\n---\nThis message was sent automatically by the Buzz Dashboard.\n")

	return text.String()
}

func statusTitle(status string) string {
	if status == "" {
		return status
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
