package entity

import "time"

// Contact is an address book entry owned by exactly one user.
type Contact struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	OwnerEmail string    `json:"userEmail"`
	PhotoURL   string    `json:"photoUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ContactPatch lists the fields a partial update may change; nil means untouched.
type ContactPatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	PhotoURL  *string
}

// Empty reports whether the patch changes nothing.
func (p ContactPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.PhotoURL == nil
}
