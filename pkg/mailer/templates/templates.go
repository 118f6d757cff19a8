package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// Welcome is the template sent after registration.
const Welcome = "welcome"

type emailTemplate struct {
	subject string
	text    *texttpl.Template
	html    *htmpl.Template
}

var registry = map[string]emailTemplate{
	Welcome: {
		subject: "Welcome to {{.AppName}}",
		text: texttpl.Must(texttpl.New("welcome.txt").Parse(
			"Hello {{.Email}},\n\nYour {{.AppName}} account is ready. You can now sign in and start adding contacts.\n")),
		html: htmpl.Must(htmpl.New("welcome.html").Parse(
			`<p>Hello {{.Email}},</p><p>Your <strong>{{.AppName}}</strong> account is ready. You can now sign in and start adding contacts.</p>`)),
	},
}

// Render executes the named template and returns subject, text and html bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	t, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	subj, err := texttpl.New("subject").Parse(t.subject)
	if err != nil {
		return "", "", "", err
	}
	var sb, tb, hb bytes.Buffer
	if err := subj.Execute(&sb, data); err != nil {
		return "", "", "", err
	}
	if err := t.text.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	if err := t.html.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return sb.String(), tb.String(), hb.String(), nil
}
