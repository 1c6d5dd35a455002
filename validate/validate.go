// Package validate holds the local field checks run before any remote call.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pumpadmin/models"
	"pumpadmin/normalize"
)

var (
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	digitsRe  = regexp.MustCompile(`^[0-9]+$`)
	aadharRe  = regexp.MustCompile(`^[0-9]{12}$`)
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Required checks that a field has a non-blank value.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Pincode checks for exactly 6 digits.
func Pincode(s string) error {
	if !pincodeRe.MatchString(s) {
		return errors.New("pincode must be exactly 6 digits")
	}
	return nil
}

// SapCode checks for a numeric string of at least 6 digits.
func SapCode(s string) error {
	if len(s) < 6 || !digitsRe.MatchString(s) {
		return errors.New("SAP code must be a number of at least 6 digits")
	}
	return nil
}

// Mobile checks that a number reduces to exactly 10 digits once the country
// prefix is stripped.
func Mobile(s string) error {
	digits := normalize.MobileDigits(s)
	if len(digits) != 10 {
		return errors.New("mobile number must have 10 digits")
	}
	return nil
}

// Aadhar checks for exactly 12 digits. Empty is allowed; the field is
// optional.
func Aadhar(s string) error {
	if s == "" {
		return nil
	}
	if !aadharRe.MatchString(s) {
		return errors.New("aadhar number must be exactly 12 digits")
	}
	return nil
}

// Email checks basic address shape. Empty is allowed; the field is optional.
func Email(s string) error {
	if s == "" {
		return nil
	}
	if !emailRe.MatchString(s) {
		return errors.New("email address is not valid")
	}
	return nil
}

// Coordinates checks latitude and longitude ranges.
func Coordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// Company checks that a value is one of the recognized oil companies.
func Company(c models.Company) error {
	for _, known := range models.Companies {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("company must be one of HPCL, BPCL, IOCL")
}

// PreferredCompanies checks that the set is non-empty and every entry is a
// recognized company. The set must never become empty once assigned.
func PreferredCompanies(list []models.Company) error {
	if len(list) == 0 {
		return errors.New("at least one preferred company is required")
	}
	for _, c := range list {
		if err := Company(c); err != nil {
			return err
		}
	}
	return nil
}

// Pump runs every local check a pump create/edit form needs, returning the
// first failure.
func Pump(p models.PetrolPump) error {
	if err := Required("customer name", p.CustomerName); err != nil {
		return err
	}
	if err := Company(p.Company); err != nil {
		return err
	}
	if err := SapCode(p.SapCode); err != nil {
		return err
	}
	if err := Pincode(p.Pincode); err != nil {
		return err
	}
	if p.Contact != "" {
		if err := Mobile(p.Contact); err != nil {
			return err
		}
	}
	return Coordinates(p.Location.Latitude, p.Location.Longitude)
}

// Request runs the pump checks against a request's shared address shape.
func Request(r models.PumpRequest) error {
	return Pump(models.PetrolPump{
		CustomerName: r.CustomerName,
		Company:      r.Company,
		SapCode:      r.SapCode,
		Pincode:      r.Pincode,
		Contact:      r.Contact,
		Location:     r.Location,
	})
}

// User runs every local check a user create/edit form needs.
func User(u models.User) error {
	if err := Required("first name", u.FirstName); err != nil {
		return err
	}
	if err := Mobile(u.Mobile); err != nil {
		return err
	}
	if err := Email(u.Email); err != nil {
		return err
	}
	return PreferredCompanies(u.PreferredCompanies)
}
