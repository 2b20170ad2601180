package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSignIn(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSignIn(rec, "https://idp.example/oauth/authorize?client_id=abc")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1>Sign In</h1>")
	assert.Contains(t, rec.Body.String(), `href="https://idp.example/oauth/authorize?client_id=abc"`)
	assert.Contains(t, rec.Body.String(), "Sign in with Bouncer")
}

func TestWriteSignIn_EscapesQuerySeparators(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSignIn(rec, "https://idp.example/oauth/authorize?client_id=abc&response_type=code")

	// & must be entity-encoded inside the href attribute
	assert.Contains(t, rec.Body.String(), "client_id=abc&amp;response_type=code")
}

func TestWriteProviderError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteProviderError(rec, "access_denied", "user said no")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Whoops!</h1>")
	assert.Contains(t, rec.Body.String(), "access_denied: user said no")
	assert.Contains(t, rec.Body.String(), `<a href="/">Try that again</a>`)
}

func TestWriteProviderError_NoDescription(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteProviderError(rec, "access_denied", "")

	assert.Contains(t, rec.Body.String(), "<pre>access_denied</pre>")
}

func TestWriteFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFailure(rec, http.StatusBadGateway, "We could not complete the sign-in.")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "We could not complete the sign-in.")
	assert.Contains(t, rec.Body.String(), `<a href="/">Try that again</a>`)
}

func TestWriteWelcome(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteWelcome(rec, "alice")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Welcome alice!</h1>")
	assert.Contains(t, rec.Body.String(), `<a href="/">Go again</a>`)
}

func TestWriteWelcome_EscapesMarkup(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteWelcome(rec, `<script>alert("pwned")</script>`)

	body := rec.Body.String()
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
