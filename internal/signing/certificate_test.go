package signing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacantvectors/postcraft/internal/models"
)

func testPost() *models.GeneratedPost {
	return &models.GeneratedPost{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Text:      "Landed my first client today. Three months of cold outreach finally paid off.",
		Model:     "llama-3.3-70b-versatile",
		CreatedAt: time.Now().UTC(),
	}
}

func TestIssueCertificate(t *testing.T) {
	service := NewCertificateService("test-secret-key-123")
	post := testPost()

	cert := service.Issue(post)
	require.NotNil(t, cert)

	assert.Equal(t, post.ID, cert.PostID)
	assert.Equal(t, post.UserID, cert.UserID)
	assert.Equal(t, post.Model, cert.Model)
	assert.NotEmpty(t, cert.TextHash)
	assert.NotEmpty(t, cert.HashChain)
	assert.NotEmpty(t, cert.Signature)
}

func TestVerifyRoundTrip(t *testing.T) {
	service := NewCertificateService("test-secret-key-123")
	post := testPost()

	cert := service.Issue(post)
	assert.True(t, service.Verify(cert, post.Text))
}

func TestVerifyRejectsAlteredText(t *testing.T) {
	service := NewCertificateService("test-secret-key-123")
	post := testPost()

	cert := service.Issue(post)
	assert.False(t, service.Verify(cert, post.Text+" (edited)"))
}

func TestVerifyRejectsTamperedCertificate(t *testing.T) {
	service := NewCertificateService("test-secret-key-123")
	post := testPost()

	cert := service.Issue(post)
	cert.TextHash = "tampered_hash"
	assert.False(t, service.Verify(cert, post.Text))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewCertificateService("key-one")
	verifier := NewCertificateService("key-two")
	post := testPost()

	cert := issuer.Issue(post)
	assert.False(t, verifier.Verify(cert, post.Text))
}
