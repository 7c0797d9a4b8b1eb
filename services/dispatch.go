package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils/logger"
)

// All side effects here are best effort. A failed webhook or email is
// logged and forgotten; the mutation that produced it already committed.

const sideEffectTimeout = 30 * time.Second

// Dispatcher fans out webhooks and notifications after mutations.
type Dispatcher struct {
	orgRepo   repository.OrganizationRepositoryInterface
	publisher WebhookPublisherInterface
	sender    NotificationSenderInterface
	logger    logger.Logger
}

// NewDispatcher creates a new side-effect dispatcher
func NewDispatcher(orgRepo repository.OrganizationRepositoryInterface, publisher WebhookPublisherInterface, sender NotificationSenderInterface, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		orgRepo:   orgRepo,
		publisher: publisher,
		sender:    sender,
		logger:    log,
	}
}

// ProfessionalEvent delivers the event to every organization holding an
// active affiliation that registered a webhook for it. API-tier sessions
// never trigger webhooks; the integration already knows what it wrote.
func (d *Dispatcher) ProfessionalEvent(ctx context.Context, session *models.Session, professional *models.Professional, event models.WebhookEvent) {
	if session != nil && session.IsAPI() {
		return
	}

	for i := range professional.Affiliations {
		affiliation := &professional.Affiliations[i]
		if !affiliation.IsActive() {
			continue
		}

		organization, err := d.orgRepo.GetOrganization(ctx, affiliation.Organization.ID)
		if err != nil || organization == nil || organization.Webhooks == nil {
			continue
		}
		webhook := organization.Webhooks.ForEvent(event)
		if webhook == nil {
			continue
		}

		delivery := &models.WebhookDelivery{
			Webhook: webhook,
			Event:   event,
			Payload: professional.Projection(organization.ID),
		}
		if err := d.publisher.Publish(ctx, delivery); err != nil {
			d.logger.Warnf("Webhook %s to organization %s failed: %v", event, organization.ID, err)
		}
	}
}

// Notify sends one email, swallowing any delivery failure
func (d *Dispatcher) Notify(ctx context.Context, notification *models.Notification) {
	if notification == nil || notification.To == "" {
		return
	}
	if err := d.sender.Send(ctx, notification); err != nil {
		d.logger.Warnf("Notification %s to %s failed: %v", notification.Template, notification.To, err)
	}
}

// HTTPWebhookPublisher delivers webhooks over plain HTTP with the
// method and headers the organization registered.
type HTTPWebhookPublisher struct {
	client *http.Client
	logger logger.Logger
}

// NewHTTPWebhookPublisher creates a webhook publisher with a bounded timeout
func NewHTTPWebhookPublisher(log logger.Logger) *HTTPWebhookPublisher {
	return &HTTPWebhookPublisher{
		client: &http.Client{Timeout: sideEffectTimeout},
		logger: log,
	}
}

func (p *HTTPWebhookPublisher) Publish(ctx context.Context, delivery *models.WebhookDelivery) error {
	body, err := json.Marshal(map[string]interface{}{
		"event":   delivery.Event,
		"payload": delivery.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	method := delivery.Webhook.HTTPMethod
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, delivery.Webhook.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range delivery.Webhook.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// HTTPNotificationSender posts email requests to the internal mail
// relay. With no relay configured it logs and drops the mail, which
// keeps development environments quiet.
type HTTPNotificationSender struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// NewHTTPNotificationSender creates a notification sender for the given relay endpoint
func NewHTTPNotificationSender(endpoint string, log logger.Logger) *HTTPNotificationSender {
	return &HTTPNotificationSender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: sideEffectTimeout},
		logger:   log,
	}
}

func (s *HTTPNotificationSender) Send(ctx context.Context, notification *models.Notification) error {
	if s.endpoint == "" {
		s.logger.Infof("Mailer disabled, dropping %s notification to %s", notification.Template, notification.To)
		return nil
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}
	return nil
}
