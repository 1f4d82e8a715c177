package licensing

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/videolighter/videolighter/go/models"
)

// Resolver maps a payment-provider email to a registered profile. Users log
// in before buying, so the profile is expected to exist already.
type Resolver struct {
	DB *gorm.DB
}

// Resolve looks up profiles by case-insensitive email match. When several
// profiles share the email the first row by id wins; that is an arbitrary
// policy, so it gets a warning.
func (r *Resolver) Resolve(email string) (*models.Profile, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var profiles []models.Profile
	res := r.DB.Where("LOWER(email) = ?", normalized).Order("id").Limit(5).Find(&profiles)
	if res.Error != nil {
		return nil, res.Error
	}

	if len(profiles) == 0 {
		return nil, &NotFoundError{Msg: fmt.Sprintf("User not found for email: %s", normalized)}
	}
	if len(profiles) > 1 {
		log.Warnf("%d profiles matched email %s, using first row", len(profiles), normalized)
	}

	return &profiles[0], nil
}
