package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vacantvectors/postcraft/internal/models"
)

// Certificate attests that a post was produced by this service and has not
// been altered since. Consumers check it with CertificateService.Verify.
type Certificate struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	TextHash  string    `json:"text_hash"`
	Model     string    `json:"model"`
	IssuedAt  time.Time `json:"issued_at"`
	HashChain string    `json:"hash_chain"`
	Signature string    `json:"signature"`
}

// CertificateService issues and validates authenticity certificates
type CertificateService struct {
	signingKey []byte
}

// NewCertificateService creates a new certificate service
func NewCertificateService(signingKey string) *CertificateService {
	return &CertificateService{
		signingKey: []byte(signingKey),
	}
}

// Issue creates a signed certificate for a generated post
func (s *CertificateService) Issue(post *models.GeneratedPost) *Certificate {
	cert := &Certificate{
		ID:       uuid.New(),
		PostID:   post.ID,
		UserID:   post.UserID,
		TextHash: s.computeHash([]byte(post.Text)),
		Model:    post.Model,
		IssuedAt: time.Now().UTC(),
	}

	cert.HashChain = s.computeHashChain(cert)
	cert.Signature = s.sign(cert.HashChain)
	return cert
}

// Verify checks a certificate against the post text it claims to cover
func (s *CertificateService) Verify(cert *Certificate, text string) bool {
	if s.computeHash([]byte(text)) != cert.TextHash {
		return false
	}
	if s.computeHashChain(cert) != cert.HashChain {
		return false
	}
	return hmac.Equal([]byte(s.sign(cert.HashChain)), []byte(cert.Signature))
}

// computeHash computes SHA-256 hash
func (s *CertificateService) computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// sign creates an HMAC-SHA256 signature
func (s *CertificateService) sign(data string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// computeHashChain computes the integrity hash of the certificate
func (s *CertificateService) computeHashChain(cert *Certificate) string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		cert.TextHash,
		cert.PostID.String(),
		cert.Model,
		cert.IssuedAt.Format(time.RFC3339),
	)
	return s.computeHash([]byte(data))
}
