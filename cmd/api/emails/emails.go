package emails

import (
	_ "embed"
)

//go:embed license_created.txt
var EmailLicenseCreatedText string

//go:embed license_created.html
var EmailLicenseCreatedHtml string
