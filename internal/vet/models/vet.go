package models

import "sort"

// Specialty is a veterinary discipline such as radiology.
type Specialty struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:80;uniqueIndex"`
}

// Vet is a clinic veterinarian and the specialties they practice.
type Vet struct {
	ID          int          `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName   string       `json:"firstName" gorm:"size:30"`
	LastName    string       `json:"lastName" gorm:"size:30"`
	Specialties []*Specialty `json:"specialties" gorm:"many2many:vet_specialties;"`
}

// NrOfSpecialties is the number of specialties, zero meaning "none" on the
// vet list page.
func (v *Vet) NrOfSpecialties() int {
	return len(v.Specialties)
}

// SortSpecialties orders specialties by name.
func (v *Vet) SortSpecialties() {
	sort.Slice(v.Specialties, func(i, j int) bool {
		return v.Specialties[i].Name < v.Specialties[j].Name
	})
}

// Clone deep-copies the vet so cached or stored values are never shared.
func (v *Vet) Clone() *Vet {
	if v == nil {
		return nil
	}
	c := &Vet{ID: v.ID, FirstName: v.FirstName, LastName: v.LastName}
	if v.Specialties != nil {
		c.Specialties = make([]*Specialty, len(v.Specialties))
		for i, s := range v.Specialties {
			sc := *s
			c.Specialties[i] = &sc
		}
	}
	return c
}

// Vets is the resource rendering of the vet list.
type Vets struct {
	VetList []*Vet `json:"vetList"`
}
