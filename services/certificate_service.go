package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/prasaja/job_portal/database"
	"github.com/prasaja/job_portal/models"
)

// RenderCertificateDocument builds the shareable PDF for an issued
// certificate and stores its URL back on the record. Runs in the background
// after finalization; failures are logged and never affect the attempt.
func RenderCertificateDocument(cert models.Certificate, candidateName, assessmentName string) {
	htmlData, err := renderCertificateHTML(cert, candidateName, assessmentName)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML for %s: %v", cert.Code, err)
		return
	}

	pdfBytes, err := printPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to print certificate PDF for %s: %v", cert.Code, err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, "job_portal_certificates", fmt.Sprintf("certificates/%s", cert.Code))
	if err != nil {
		log.Printf("🔥 Failed to upload certificate %s: %v", cert.Code, err)
		return
	}

	err = database.DB.Model(&models.Certificate{}).
		Where("id = ?", cert.ID).
		Update("document_url", uploadURL).Error
	if err != nil {
		log.Printf("🔥 Failed to store certificate URL for %s: %v", cert.Code, err)
		return
	}

	log.Printf("✅ Rendered and uploaded certificate %s.", cert.Code)
}

func renderCertificateHTML(cert models.Certificate, candidateName, assessmentName string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		CandidateName  string
		AssessmentName string
		Code           string
		Issuer         string
		IssueDate      string
	}{
		CandidateName:  candidateName,
		AssessmentName: assessmentName,
		Code:           cert.Code,
		Issuer:         cert.Issuer,
		IssueDate:      cert.IssuedAt.Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
