package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	gomail "gopkg.in/gomail.v2"
)

// Lead is a "request information" submission from the public site.
type Lead struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Consent  bool   `json:"consent"`
	Source   string `json:"source"`
}

// Mailer delivers a lead notification to the site owner.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Password)
	return d.DialAndSend(msg)
}

var leadMailTmpl = template.Must(template.New("lead").Parse(`
<h2>New lead from {{.Source}}</h2>
<table>
  <tr><td>Name</td><td>{{.FullName}}</td></tr>
  <tr><td>Email</td><td>{{.Email}}</td></tr>
  <tr><td>Phone</td><td>{{.Phone}}</td></tr>
  <tr><td>Consent</td><td>{{.Consent}}</td></tr>
</table>
<p>{{.Message}}</p>
`))

// handleLead emails the submission to the configured address and
// optionally forwards it to a third-party messaging provider. With no
// mailer configured the endpoint answers 501 so the frontend can show a
// "not available" state instead of silently dropping leads.
func (a *App) handleLead(c echo.Context) error {
	var lead Lead
	if err := c.Bind(&lead); err != nil {
		return badRequest(c, "invalid request")
	}
	if a.Mailer == nil || a.Config.LeadNotifyTo == "" {
		return c.JSON(http.StatusNotImplemented, echo.Map{
			"success": false,
			"error":   "mail delivery is not configured",
		})
	}

	subject := "New lead: " + leadLabel(lead)
	var body bytes.Buffer
	if err := leadMailTmpl.Execute(&body, lead); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := a.Mailer.Send(ctx, a.Config.LeadNotifyTo, subject, body.String()); err != nil {
		c.Logger().Errorf("lead mail: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{
			"success": false,
			"error":   fmt.Sprintf("failed to send notification: %v", err),
		})
	}

	if a.Config.LeadProviderEndpoint == "" || a.Config.LeadProviderAPIKey == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "email sent, provider not configured",
		})
	}

	data, err := a.forwardLead(ctx, lead)
	if err != nil {
		c.Logger().Errorf("lead forward: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "provider request failed",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Sent successfully",
		"data":    data,
	})
}

// forwardLead POSTs the lead to the external provider and returns its
// decoded response body.
func (a *App) forwardLead(ctx context.Context, lead Lead) (json.RawMessage, error) {
	payload, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Config.LeadProviderEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.Config.LeadProviderAPIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("provider returned %s", resp.Status)
	}
	var data json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// leadLabel picks the best human identifier for the subject line.
func leadLabel(l Lead) string {
	switch {
	case l.FullName != "":
		return l.FullName
	case l.Phone != "":
		return l.Phone
	case l.Email != "":
		return l.Email
	default:
		return "Request Information"
	}
}
