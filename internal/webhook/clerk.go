package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"coursemarket/internal/domain"

	svix "github.com/svix/svix-webhooks/go"
)

// ClerkVerifier проверяет подпись svix (заголовки svix-id, svix-timestamp,
// svix-signature) и разбирает событие жизненного цикла пользователя.
type ClerkVerifier struct {
	wh *svix.Webhook
}

func NewClerkVerifier(secret string) (*ClerkVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("clerk webhook secret: %w", err)
	}
	return &ClerkVerifier{wh: wh}, nil
}

type clerkPayload struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
			Verification struct {
				Status string `json:"status"`
			} `json:"verification"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func (v *ClerkVerifier) Verify(payload []byte, headers http.Header) (domain.IdentityEvent, error) {
	if err := v.wh.Verify(payload, headers); err != nil {
		return domain.IdentityEvent{}, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	var body clerkPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return domain.IdentityEvent{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	return domain.IdentityEvent{
		Type:     body.Type,
		UserID:   body.Data.ID,
		Name:     strings.TrimSpace(body.Data.FirstName + " " + body.Data.LastName),
		Email:    firstVerifiedEmail(body),
		ImageURL: body.Data.ImageURL,
	}, nil
}

// Берем первый подтвержденный адрес, иначе просто первый
func firstVerifiedEmail(body clerkPayload) string {
	for _, addr := range body.Data.EmailAddresses {
		if addr.Verification.Status == "verified" {
			return addr.EmailAddress
		}
	}
	if len(body.Data.EmailAddresses) > 0 {
		return body.Data.EmailAddresses[0].EmailAddress
	}
	return ""
}
