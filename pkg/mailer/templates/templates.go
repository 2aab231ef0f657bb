package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// Template names.
const (
	VerifyEmail   = "verify_email"
	ResetPassword = "reset_password"
)

// EmailData carries the fields the account emails interpolate.
type EmailData struct {
	AppName       string `json:"AppName"`
	FirstName     string `json:"FirstName"`
	ActionURL     string `json:"ActionURL"`
	ExpiresInText string `json:"ExpiresInText"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// Subject returns the subject line for a template name.
func Subject(name, appName string) string {
	switch name {
	case VerifyEmail:
		return "Verify Your Email - " + appName
	case ResetPassword:
		return "Password Reset - " + appName
	default:
		return "Notification - " + appName
	}
}

// RenderHTML renders the named template with the given data.
func RenderHTML(name string, data any) (string, error) {
	t, err := htmpl.New(name + ".tmpl").ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
