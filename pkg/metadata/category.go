package metadata

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryDrive              Category = "drive"
	CategoryController         Category = "controller"
	CategoryPower              Category = "power"
	CategoryCommunication      Category = "communication"
	CategorySoftware           Category = "software"
	CategoryObjectManipulation Category = "object_manipulation"
	CategorySensors            Category = "sensors"
	CategoryChassis            Category = "chassis"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryDrive, CategoryController, CategoryPower, CategoryCommunication,
		CategorySoftware, CategoryObjectManipulation, CategorySensors, CategoryChassis:
		return true
	default:
		return false
	}
}

func NewCategory(value string) (Category, error) {
	normalized := strings.Replace(strings.ToLower(strings.TrimSpace(value)), " ", "_", -1)
	category := Category(normalized)
	if !category.IsValid() {
		return category, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s, %s, %s, %s, %s, %s",
			CategoryDrive, CategoryController, CategoryPower, CategoryCommunication,
			CategorySoftware, CategoryObjectManipulation, CategorySensors, CategoryChassis,
		)
	}

	return category, nil
}

func (c Category) String() string {
	return string(c)
}

// Categories lists every valid category, used by validation and the
// simulated price source multiplier table.
func Categories() []Category {
	return []Category{
		CategoryDrive, CategoryController, CategoryPower, CategoryCommunication,
		CategorySoftware, CategoryObjectManipulation, CategorySensors, CategoryChassis,
	}
}
