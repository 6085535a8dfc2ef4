package sendgrid

import (
	"context"
	"fmt"

	"github.com/kharidoapp/checkout-engine/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends the post-commit order confirmation. The committer
// treats failures as a user-facing notice, never as a reason to unwind the
// order.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, order *models.Order) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// GetSendGridClient exposes the underlying client so tests can point it at
// a mock server.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}

func (e *emailService) SendOrderConfirmation(ctx context.Context, toEmail string, order *models.Order) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", toEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = fmt.Sprintf("Order confirmed: %s", order.ID.String())
	message.AddPersonalizations(personalization)

	body := fmt.Sprintf(
		"Your order of %d item(s) totalling %.2f was recorded with status %s.\nShipping to: %s, %s, %s, PIN %s.",
		len(order.Items), order.Total, order.Status,
		order.Address.Name, order.Address.Street, order.Address.City, order.Address.Pincode,
	)
	message.AddContent(mail.NewContent("text/plain", body))

	// send the email
	response, err := e.client.Send(message)

	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
