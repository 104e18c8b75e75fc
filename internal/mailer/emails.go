package mailer

import (
	"fmt"
	"strings"
)

const verificationEmailTemplate = `
	<p>Hi,</p>
	<p>Thanks for signing up! Please confirm your email address by entering the
	code below:</p>

	<p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{verificationCode}</p>

	<p>This code will expire in 24 hours.</p>
	<p>If you did not create an account, you can safely ignore this email.</p>
`

const passwordResetRequestTemplate = `
	<p>Hi,</p>
	<p>We received a request to reset the password for your account.</p>
	<p>If you made this request, please click the link below to create a new password:</p>

	<p><a href="{resetURL}">{resetURL}</a></p>

	<p>This link will expire in 1 hour for your security.</p>
	<p>If you did not request a password reset, you can safely ignore this email.</p>
`

const passwordResetSuccessTemplate = `
	<p>Hi,</p>
	<p>The password for your account was just changed.</p>
	<p>If you made this change, no further action is needed.</p>
	<p>If you did not change your password, please reset it immediately and
	contact support.</p>
`

// SendVerificationEmail sends the email containing the 6-digit verification code.
func (m *Mailer) SendVerificationEmail(to, code string) error {
	body := strings.ReplaceAll(verificationEmailTemplate, "{verificationCode}", code)
	return m.SendHTML([]string{to}, "Verify your email", body)
}

// SendWelcomeEmail sends the welcome email after a successful verification.
func (m *Mailer) SendWelcomeEmail(to, name string) error {
	body := fmt.Sprintf(`
	<p>Hi %s,</p>
	<p>Your email address has been verified and your account is ready to use.</p>
	<p>Welcome aboard!</p>
`, name)
	return m.SendHTML([]string{to}, "Welcome!", body)
}

// SendPasswordResetEmail sends the email containing the password reset link.
func (m *Mailer) SendPasswordResetEmail(to, link string) error {
	body := strings.ReplaceAll(passwordResetRequestTemplate, "{resetURL}", link)
	return m.SendHTML([]string{to}, "Reset your password", body)
}

// SendResetSuccessEmail confirms that the password was changed.
func (m *Mailer) SendResetSuccessEmail(to string) error {
	return m.SendHTML([]string{to}, "Password reset successful", passwordResetSuccessTemplate)
}
