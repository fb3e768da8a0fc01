// File: services/assistant/dispatcher.go
package assistant

import (
	"net/url"
	"strings"

	"baturite/models"
	"baturite/utils"

	"go.uber.org/zap"
)

// Navigator performs an in-app navigation. Params are passed through opaquely;
// only the destination view interprets them.
type Navigator interface {
	Navigate(view models.ViewID, params map[string]string)
}

// URLOpener opens an external link in a new browsing context.
type URLOpener interface {
	OpenURL(rawURL string)
}

// Dialer initiates a telephone dial intent.
type Dialer interface {
	Dial(phoneNumber string)
}

// Dispatcher maps a validated action to exactly one side effect. It holds no
// state and never panics; rejected or unknown actions are logged and dropped.
type Dispatcher struct {
	Nav    Navigator
	Opener URLOpener
	Dialer Dialer
}

// Dispatch fires the side effect for one action. Fire-and-forget: no result
// is reported back into the conversation.
func (d *Dispatcher) Dispatch(action models.ChatAction) {
	logger := utils.GetLogger()

	switch action.Type {
	case models.ActionNavigate:
		if !models.KnownViews[action.Payload.View] {
			logger.Warn("assistant: navigate to unknown view",
				zap.String("view", string(action.Payload.View)))
			return
		}
		d.Nav.Navigate(action.Payload.View, action.Payload.Params)

	case models.ActionOpenURL:
		u, err := url.Parse(action.Payload.URL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			logger.Warn("assistant: refusing to open non-absolute URL",
				zap.String("url", action.Payload.URL))
			return
		}
		d.Opener.OpenURL(u.String())

	case models.ActionCall:
		number := NormalizePhoneNumber(action.Payload.PhoneNumber)
		if number == "" {
			logger.Warn("assistant: call action without a dialable number",
				zap.String("raw", action.Payload.PhoneNumber))
			return
		}
		d.Dialer.Dial(number)

	default:
		logger.Warn("assistant: ignoring unknown action type",
			zap.String("type", string(action.Type)))
	}
}

// NormalizePhoneNumber strips formatting, keeping digits and a leading plus.
func NormalizePhoneNumber(raw string) string {
	var sb strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		} else if r == '+' && i == 0 {
			sb.WriteRune(r)
		}
	}
	normalized := sb.String()
	if normalized == "+" {
		return ""
	}
	return normalized
}
