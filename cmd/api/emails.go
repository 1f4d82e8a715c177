package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/videolighter/videolighter/go/cmd/api/emails"
	"github.com/videolighter/videolighter/go/cmd/lib"
	"github.com/videolighter/videolighter/go/models"
)

type licenseEmailParams struct {
	Greeting    string
	LicenseKey  string
	ProductType string
}

// sendLicenseEmail mails the key to the buyer on first issuance. Skipped
// entirely when SES isn't configured.
func (s *Server) sendLicenseEmail(license *models.License) {
	if s.Mailer == nil {
		return
	}

	params := &licenseEmailParams{
		Greeting:    "Hi,",
		LicenseKey:  license.LicenseKey,
		ProductType: license.ProductType,
	}

	txt, err := lib.ExecuteTemplate(emails.EmailLicenseCreatedText, params)
	if err != nil {
		log.Errorf("license email template: %v", err)
		return
	}
	html, err := lib.ExecuteTemplate(emails.EmailLicenseCreatedHtml, params)
	if err != nil {
		log.Errorf("license email template: %v", err)
		return
	}

	if err := s.Mailer.SendEmail(license.UserEmail, "Your VideoLighter License", string(txt), string(html)); err != nil {
		log.Errorf("failed to send license email to %s: %v", license.UserEmail, err)
	}
}
