package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var tmpl = template.Must(template.New("mail").Parse(`
{{define "login_otp"}}
<p>Hi {{.Name}},</p>
<p>Your login verification code is:</p>
<h2 style="letter-spacing:4px">{{.Code}}</h2>
<p>The code expires in {{.ExpiresIn}}. If you did not try to sign in, you can ignore this email.</p>
{{end}}

{{define "reset_otp"}}
<p>Hi {{.Name}},</p>
<p>Your password reset code is:</p>
<h2 style="letter-spacing:4px">{{.Code}}</h2>
<p>The code expires in {{.ExpiresIn}}. If you did not request a reset, you can ignore this email.</p>
{{end}}

{{define "welcome"}}
<p>Hi {{.Name}},</p>
<p>Welcome to Pinshelf. Confirm your email with the code below to activate your account:</p>
<h2 style="letter-spacing:4px">{{.Code}}</h2>
{{end}}
`))

// Render produces subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	switch name {
	case TemplateLoginOTP:
		subject = "Your login verification code"
	case TemplateResetOTP:
		subject = "Reset your password"
	case TemplateWelcome:
		subject = "Welcome to Pinshelf"
	default:
		return "", "", fmt.Errorf("unknown mail template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
