package models

import "sort"

// PetType is the kind of animal a pet is, such as cat or hamster.
type PetType struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:80;uniqueIndex"`
}

// TableName keeps the GORM table aligned with the Postgres schema.
func (PetType) TableName() string {
	return "types"
}

// SortByName orders types by name, then id.
func SortByName(types []*PetType) {
	sort.SliceStable(types, func(i, j int) bool {
		if types[i].Name != types[j].Name {
			return types[i].Name < types[j].Name
		}
		return types[i].ID < types[j].ID
	})
}
