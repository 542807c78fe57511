package sms

import (
	"fmt"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/followup-app/followup/apperr"
	"github.com/followup-app/followup/config"
)

// Notifier texts a recipient once their finalized plan has been emailed.
type Notifier struct {
	accountSid string
	authToken  string
	from       string
	appName    string
	client     *twilio.RestClient
}

func NewNotifier(cfg config.Config) *Notifier {
	n := &Notifier{
		accountSid: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		from:       cfg.TwilioFromNumber,
		appName:    cfg.AppName,
	}
	if n.accountSid != "" && n.authToken != "" {
		n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: n.accountSid,
			Password: n.authToken,
		})
	}
	return n
}

// Notify sends a short delivery notice to the given phone number.
func (n *Notifier) Notify(to string) error {
	if n.accountSid == "" || n.authToken == "" || n.from == "" {
		return apperr.Config("Twilio settings not set; set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(fmt.Sprintf("%s: your finalized action plan is on its way to your inbox.", n.appName))

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		return apperr.Delivery("sending SMS failed", err)
	}
	return nil
}
