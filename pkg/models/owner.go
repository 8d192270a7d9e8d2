package models

import "time"

// Owner is the registered operator of a drone, as recorded from the owner
// registry. Rows are created once on first violation and never updated.
type Owner struct {
	ID                   string     `json:"id"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Email                string     `json:"email"`
	PhoneNumber          string     `json:"phone_number"`
	SocialSecurityNumber string     `json:"social_security_number"`
	PurchasedAt          *time.Time `json:"purchased_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// OwnerPublic is the subset of owner fields exposed on the violations API.
type OwnerPublic struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	SocialSecurityNumber string `json:"social_security_number"`
	PhoneNumber          string `json:"phone_number"`
}

// Public returns the API-facing view of the owner.
func (o *Owner) Public() OwnerPublic {
	return OwnerPublic{
		FirstName:            o.FirstName,
		LastName:             o.LastName,
		SocialSecurityNumber: o.SocialSecurityNumber,
		PhoneNumber:          o.PhoneNumber,
	}
}
