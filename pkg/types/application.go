package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a candidate submission from the public intake form. Identity
// fields are immutable after submission; only the review fields change.
type Application struct {
	ID string `db:"id"`

	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	SSN         string    `db:"ssn"`
	DateOfBirth time.Time `db:"date_of_birth"`

	EnglishLevel       int     `db:"english_level"` // 0-100
	HasDriversLicense  bool    `db:"has_drivers_license"`
	LicenseDocumentKey *string `db:"license_document_key"`

	DesiredServices   []string         `db:"desired_services"` // jsonb array
	DesiredHourlyRate *decimal.Decimal `db:"desired_hourly_rate"`

	Address

	EmergencyContactName  *string `db:"emergency_contact_name"`
	EmergencyContactPhone *string `db:"emergency_contact_phone"`
	ReferralSource        *string `db:"referral_source"`

	Status     ApplicationStatus `db:"status"`
	ReviewedAt *time.Time        `db:"reviewed_at"`
	ReviewedBy *string           `db:"reviewed_by"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (a *Application) FullName() string {
	return a.FirstName + " " + a.LastName
}

type Address struct {
	Street  string  `db:"street" form:"street"`
	City    *string `db:"city" form:"city"`
	State   *string `db:"state" form:"state"`
	ZipCode *string `db:"zip_code" form:"zip_code"`
}
