package router

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bundlewise/go-api/pkg/global"
	"github.com/bundlewise/go-api/pkg/models"
)

// HandleWebhookEvent verifies the platform's signature, acks immediately,
// and logs cart keywords in the background. Logging failures are never
// surfaced to the platform; a retry storm over behavioral data is not worth
// it.
func (d *Dependencies) HandleWebhookEvent(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Failed to read webhook body", nil))
		return
	}

	if !verifySignature(body, c.GetHeader("X-Webhook-Signature"), d.WebhookSecret) {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid webhook signature", nil))
		return
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid webhook payload", nil))
		return
	}

	go d.logCartKeywords(event)

	c.JSON(http.StatusOK, global.SuccessResponse(nil))
}

func (d *Dependencies) logCartKeywords(event models.WebhookEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := models.CartKeywordRecord{
		CompanyID: event.CompanyID,
		CartID:    event.Payload.CartID,
		Event:     event.Event,
		Keywords:  extractKeywords(event.Payload.Items),
		CreatedAt: time.Now().UTC(),
	}
	if err := d.Keywords.LogCartKeywords(ctx, record); err != nil {
		log.Printf("Warning: failed to log cart keywords for cart %s: %v", record.CartID, err)
	}
}

// extractKeywords lowercases item names and splits them into de-duplicated
// word tokens.
func extractKeywords(items []models.WebhookCartItem) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, item := range items {
		for _, word := range strings.Fields(strings.ToLower(item.Name)) {
			if len(word) < 2 || seen[word] {
				continue
			}
			seen[word] = true
			keywords = append(keywords, word)
		}
	}
	return keywords
}

func verifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
