package notifier

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/dertamme/milestone3/configs"
)

// SESNotifier delivers order emails through AWS SES.
type SESNotifier struct{}

func (n *SESNotifier) SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	subject := fmt.Sprintf("Order Confirmation - Order #%d", msg.OrderID)
	html, text := orderConfirmationBodies(msg)
	return n.send(ctx, msg.CustomerEmail, subject, html, text)
}

func (n *SESNotifier) SendShippingNotification(ctx context.Context, msg ShippingNotification) error {
	subject := fmt.Sprintf("Your Order #%d Status Update: %s", msg.OrderID, msg.Status)
	html, text := shippingNotificationBodies(msg)
	return n.send(ctx, msg.CustomerEmail, subject, html, text)
}

func (n *SESNotifier) send(ctx context.Context, recipient, subject, bodyHTML, bodyText string) error {
	cfg := config.LoadEmailConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		log.Printf("Failed to load AWS SDK config for email to %s: %v", recipient, err)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	if cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured in environment variables")
	}
	if recipient == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err := client.SendEmail(ctx, input); err != nil {
		log.Printf("Failed to send email to %s: %v", recipient, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func orderConfirmationBodies(msg OrderConfirmation) (html, text string) {
	var itemsHTML, itemsText strings.Builder
	for _, item := range msg.Items {
		fmt.Fprintf(&itemsHTML, "<li>Product #%d x %d - %.2f each</li>", item.ProductID, item.Quantity, item.Price)
		fmt.Fprintf(&itemsText, "- Product #%d x %d - %.2f each\n", item.ProductID, item.Quantity, item.Price)
	}

	orderDate := msg.OrderDate.Format("January 02, 2006")

	html = fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for your order! Your order #%d placed on %s has been received.</p>
            <p><strong>Order Details:</strong></p>
            <ul>%s</ul>
            <p><strong>Total Amount: %.2f</strong></p>
            <p>We'll send you another email when your order ships.</p>
            <p>Best regards,</p>
            <p>Your Storefront Team</p>
        </body>
        </html>`, msg.CustomerName, msg.OrderID, orderDate, itemsHTML.String(), msg.TotalAmount)

	text = fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order #%d placed on %s has been received.\n\n"+
			"Order Details:\n%s\nTotal Amount: %.2f\n\n"+
			"We'll send you another email when your order ships.\n\nBest regards,\nYour Storefront Team",
		msg.CustomerName, msg.OrderID, orderDate, itemsText.String(), msg.TotalAmount)

	return html, text
}

func shippingNotificationBodies(msg ShippingNotification) (html, text string) {
	shippingDate := orPlaceholder(msg.Details.ShippingDate)
	carrier := orPlaceholder(msg.Details.Carrier)
	trackingNumber := orPlaceholder(msg.Details.TrackingNumber)
	trackingURL := orPlaceholder(msg.Details.TrackingURL)

	html = fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Your order #%d is now: <strong>%s</strong></p>
            <ul>
                <li>Shipping Date: %s</li>
                <li>Carrier: %s</li>
                <li>Tracking Number: %s</li>
                <li>Tracking URL: %s</li>
            </ul>
            <p>Best regards,</p>
            <p>Your Storefront Team</p>
        </body>
        </html>`, msg.CustomerName, msg.OrderID, msg.Status, shippingDate, carrier, trackingNumber, trackingURL)

	text = fmt.Sprintf(
		"Dear %s,\n\nYour order #%d is now: %s\n\n"+
			"Shipping Date: %s\nCarrier: %s\nTracking Number: %s\nTracking URL: %s\n\n"+
			"Best regards,\nYour Storefront Team",
		msg.CustomerName, msg.OrderID, msg.Status, shippingDate, carrier, trackingNumber, trackingURL)

	return html, text
}

// orPlaceholder degrades missing shipping metadata to "N/A" instead of
// failing the notification.
func orPlaceholder(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
