package lib

import (
	"bytes"
	"text/template"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/sts"
)

// Mailer sends transactional mail through SES.
type Mailer struct {
	sesClient *ses.SES
	from      string
}

// NewMailer builds an SES client and checks the credentials actually work
// before anything tries to send with them.
func NewMailer(region, from string) (*Mailer, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	stsClient := sts.New(sess)
	if _, err := stsClient.GetCallerIdentity(&sts.GetCallerIdentityInput{}); err != nil {
		return nil, err
	}

	return &Mailer{sesClient: ses.New(sess), from: from}, nil
}

func (m *Mailer) SendEmail(to, subject, bodyText, bodyHtml string) error {
	makeContent := func(s string) *ses.Content {
		return &ses.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(s),
		}
	}

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(to)},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: makeContent(bodyHtml),
				Text: makeContent(bodyText),
			},
			Subject: makeContent(subject),
		},
		Source: aws.String(m.from),
	}

	_, err := m.sesClient.SendEmail(input)
	return err
}

func ExecuteTemplate(text string, params interface{}) ([]byte, error) {
	tpl, err := template.New("email").Parse(text)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, params); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
