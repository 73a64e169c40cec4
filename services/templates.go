package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"recipebook-backend/models"
)

var invitationTmpl = template.Must(template.New("invitation").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="text-align: center; margin-bottom: 30px;">
		<h1>{{.SiteName}}</h1>
	</div>
	<div style="background: #fff; padding: 20px; border-radius: 5px;">
		<h2>You've Been Invited!</h2>
		<p>Hello,</p>
		<p>You've been invited to join <strong>{{.SiteName}}</strong> as a <strong>{{.Role}}</strong>.</p>
		<p>Please click the button below to complete your registration:</p>
		<div style="text-align: center;">
			<a href="{{.Link}}" style="display: inline-block; padding: 12px 24px; background-color: #1E3A8A; color: white; text-decoration: none; border-radius: 4px; font-weight: bold; margin: 20px 0;">Accept Invitation</a>
		</div>
		<p>Or copy and paste this link into your browser:</p>
		<div style="margin: 15px 0; word-break: break-all;">{{.Link}}</div>
		<p style="color: #777; font-size: 0.9em; margin-top: 20px;">This invitation will expire on <strong>{{.Expiry}}</strong>.</p>
		<p>If you didn't expect this invitation, please ignore this email.</p>
	</div>
	<div style="margin-top: 30px; text-align: center; font-size: 0.9em; color: #666;">
		<p>© {{.Year}} {{.SiteName}}. All rights reserved.</p>
		<p>This is an automated message, please do not reply directly to this email.</p>
	</div>
</body>
</html>`))

// BuildInvitationEmail renders the subject and HTML body for an invitation.
func BuildInvitationEmail(role models.UserRole, link string, expiresAt time.Time, siteName string) (subject, html string) {
	subject = fmt.Sprintf("You're invited to join %s", siteName)

	var buf bytes.Buffer
	invitationTmpl.Execute(&buf, map[string]interface{}{
		"SiteName": siteName,
		"Role":     FormatRole(role),
		"Link":     link,
		"Expiry":   expiresAt.Format("Monday, January 2, 2006"),
		"Year":     time.Now().Year(),
	})
	return subject, buf.String()
}

// FormatRole turns a role tag into display form: PASTRY_CHEF → Pastry Chef.
func FormatRole(role models.UserRole) string {
	words := strings.Split(strings.ToLower(string(role)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
