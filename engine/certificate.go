package engine

import (
	"context"

	"github.com/prasaja/job_portal/models"
)

// CertificateIssuer is the fixed issuer label stamped on every certificate.
const CertificateIssuer = "Job Portal Assessment Center"

// certCodeMaxAttempts bounds code generation so a shrinking keyspace cannot
// loop forever; past the bound issuance fails with ErrCodeSpaceExhausted.
const certCodeMaxAttempts = 10

const (
	certLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	certDigits  = "0123456789"
)

// randomCertificateCode builds a candidate code of 3 uppercase letters
// followed by 3 digits.
func (e *Engine) randomCertificateCode() string {
	b := make([]byte, 6)
	for i := 0; i < 3; i++ {
		b[i] = certLetters[e.rand.Intn(len(certLetters))]
	}
	for i := 3; i < 6; i++ {
		b[i] = certDigits[e.rand.Intn(len(certDigits))]
	}
	return string(b)
}

// generateCertificateCode retries generation until a non-colliding code is
// found, up to certCodeMaxAttempts. The storage-level unique constraint on
// the code column remains the backstop against a racing issuer.
func (e *Engine) generateCertificateCode(ctx context.Context) (string, error) {
	for i := 0; i < certCodeMaxAttempts; i++ {
		code := e.randomCertificateCode()
		exists, err := e.store.CertificateCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// mintCertificate builds the certificate record for a passing assessment
// attempt. Persistence happens inside the finalization transaction.
func (e *Engine) mintCertificate(ctx context.Context, att *models.Attempt, def *Definition) (*models.Certificate, error) {
	code, err := e.generateCertificateCode(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Certificate{
		Code:         code,
		AttemptID:    att.ID,
		CandidateID:  att.CandidateID,
		AssessmentID: def.ID,
		Issuer:       CertificateIssuer,
		IssuedAt:     e.now(),
	}, nil
}
