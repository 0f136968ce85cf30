package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"
)

var (
	ErrWebhookSecretNotConfigured = errors.New("webhook secret not configured")
	ErrMalformedSignature         = errors.New("malformed webhook signature header")
	ErrSignatureMismatch          = errors.New("webhook signature mismatch")
	ErrSignatureExpired           = errors.New("webhook signature outside tolerance")
	ErrMalformedWebhookBody       = interfaces.ErrMalformedWebhookEvent
)

// SignatureHeader is the header carrying "ts=<unix>,v1=<hex hmac>".
const SignatureHeader = "X-Signature"

// SignWebhook computes the v1 signature for a raw body sent at ts.
func SignWebhook(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeaderValue builds the full header value for body.
func SignatureHeaderValue(secret string, ts int64, body []byte) string {
	return fmt.Sprintf("ts=%d,v1=%s", ts, SignWebhook(secret, ts, body))
}

func verifySignature(secret, header string, body []byte, tolerance time.Duration, now time.Time) error {
	if secret == "" {
		return ErrWebhookSecretNotConfigured
	}

	var ts int64
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return ErrMalformedSignature
			}
			ts = n
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return ErrMalformedSignature
	}

	if tolerance > 0 {
		age := now.Sub(time.Unix(ts, 0))
		if age < 0 {
			age = -age
		}
		if age > tolerance {
			return ErrSignatureExpired
		}
	}

	expected := SignWebhook(secret, ts, body)
	for _, sig := range sigs {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

type webhookBody struct {
	ID   json.RawMessage `json:"id"`
	Type string          `json:"type"`
	Data struct {
		ID     json.RawMessage `json:"id"`
		Status string          `json:"status"`
	} `json:"data"`
}

// parseWebhookEvent decodes a notification body. data.status may carry either
// a normalised charge status or a raw Mercado Pago status.
func parseWebhookEvent(body []byte) (entities.WebhookEvent, error) {
	var wb webhookBody
	if err := json.Unmarshal(body, &wb); err != nil {
		return entities.WebhookEvent{}, fmt.Errorf("%w: %v", ErrMalformedWebhookBody, err)
	}
	// Mercado Pago sends numeric ids, other senders strings
	chargeID := rawID(wb.Data.ID)
	if wb.Type == "" || chargeID == "" {
		return entities.WebhookEvent{}, ErrMalformedWebhookBody
	}

	event := entities.WebhookEvent{ID: rawID(wb.ID), Type: wb.Type, ChargeID: chargeID}
	if wb.Data.Status != "" {
		event.Status = normalizeStatus(wb.Data.Status)
	}
	return event, nil
}

func rawID(raw json.RawMessage) string {
	id := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if id == "null" {
		return ""
	}
	return id
}

// normalizeStatus maps Mercado Pago payment statuses onto charge statuses.
func normalizeStatus(status string) entities.ChargeStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "succeeded", "approved", "authorized":
		return entities.ChargeStatusSucceeded
	case "failed", "rejected", "cancelled", "refunded", "charged_back":
		return entities.ChargeStatusFailed
	}
	return entities.ChargeStatusProcessing
}
