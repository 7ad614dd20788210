package models

import "strings"

// Owner is a pet owner registered at the clinic.
//
// Invariants:
//   - ID is zero until the store assigns one on first save
//   - ID never changes once assigned; updates address the owner by ID
//   - ID uniqueness is the store's responsibility
type Owner struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"firstName" gorm:"size:30"`
	LastName  string `json:"lastName" gorm:"size:30;index"`
	Address   string `json:"address" gorm:"size:255"`
	City      string `json:"city" gorm:"size:80"`
	Telephone string `json:"telephone" gorm:"size:20"`
}

// IsNew reports whether the owner has not been persisted yet.
func (o *Owner) IsNew() bool {
	return o.ID == 0
}

// FullName joins first and last name for display and logging.
func (o *Owner) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// Clone returns a shallow copy so stores never hand out their internal pointers.
func (o *Owner) Clone() *Owner {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
