// Package views renders the small HTML pages of the sign-in flow. All
// interpolated values go through html/template's contextual escaping, so
// provider-supplied strings can never inject markup.
package views

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/bouncerio/bouncer-login/internal/logger"
	"go.uber.org/zap"
)

const signInHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Sign In</title></head>
<body>
<h1>Sign In</h1>
<p><a href="{{.LoginURL}}">Sign in with Bouncer</a>.</p>
</body>
</html>`

const providerErrorHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Whoops!</title></head>
<body>
<h1>Whoops!</h1>
<p><a href="/">Try that again</a>.</p>
<pre>{{.Code}}{{if .Description}}: {{.Description}}{{end}}</pre>
</body>
</html>`

const failureHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Whoops!</title></head>
<body>
<h1>Whoops!</h1>
<p>{{.Message}}</p>
<p><a href="/">Try that again</a>.</p>
</body>
</html>`

const welcomeHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Welcome</title></head>
<body>
<h1>Welcome {{.Username}}!</h1>
<p><a href="/">Go again</a>.</p>
</body>
</html>`

var (
	signInTmpl        = template.Must(template.New("sign_in").Parse(signInHTML))
	providerErrorTmpl = template.Must(template.New("provider_error").Parse(providerErrorHTML))
	failureTmpl       = template.Must(template.New("failure").Parse(failureHTML))
	welcomeTmpl       = template.Must(template.New("welcome").Parse(welcomeHTML))
)

// WriteSignIn renders the landing page with the provider sign-in link.
func WriteSignIn(w http.ResponseWriter, loginURL string) {
	render(w, http.StatusOK, signInTmpl, struct{ LoginURL string }{loginURL})
}

// WriteProviderError renders the page shown when the provider answers the
// callback with an error instead of a code, with a link to retry.
func WriteProviderError(w http.ResponseWriter, code, description string) {
	render(w, http.StatusOK, providerErrorTmpl, struct{ Code, Description string }{code, description})
}

// WriteFailure renders a failure page with the given HTTP status.
func WriteFailure(w http.ResponseWriter, status int, message string) {
	render(w, status, failureTmpl, struct{ Message string }{message})
}

// WriteWelcome renders the signed-in page for username.
func WriteWelcome(w http.ResponseWriter, username string) {
	render(w, http.StatusOK, welcomeTmpl, struct{ Username string }{username})
}

// render executes the template into a buffer first, so an execution error can
// still produce a clean 500 instead of a half-written page.
func render(w http.ResponseWriter, status int, tmpl *template.Template, data interface{}) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logger.Error("Failed to render template", zap.String("template", tmpl.Name()), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Failed to write response", zap.Error(err))
	}
}
