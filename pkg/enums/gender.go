package enums

import "fmt"

// Gender is the audience segment a product is listed under.
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderBoys   Gender = "Boys"
	GenderGirls  Gender = "Girls"
	GenderUnisex Gender = "Unisex"
)

var validGenders = []Gender{
	GenderMen,
	GenderWomen,
	GenderBoys,
	GenderGirls,
	GenderUnisex,
}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Gender.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender.
func ParseGender(value string) (Gender, error) {
	for _, candidate := range validGenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q", value)
}
