// Package normalize maps raw, inconsistently-keyed documents from the remote
// store onto the canonical entity shapes. Every function here is pure and
// total: missing keys, wrong types and unknown shapes never panic, they
// resolve to the zero value of the canonical field.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"pumpadmin/models"
)

// User normalizes a raw user document.
func User(id string, raw map[string]interface{}) models.User {
	u := models.User{
		UserID:             id,
		FirstName:          str(raw, userAliases["firstName"]),
		LastName:           str(raw, userAliases["lastName"]),
		Mobile:             str(raw, userAliases["mobile"]),
		Email:              str(raw, userAliases["email"]),
		UserType:           models.UserType(str(raw, userAliases["userType"])),
		TeamCode:           str(raw, userAliases["teamCode"]),
		TeamName:           str(raw, userAliases["teamName"]),
		IsTeamOwner:        boolean(raw, userAliases["isTeamOwner"]),
		TeamMemberStatus:   models.MemberStatus(str(raw, userAliases["teamMemberStatus"])),
		IsBlocked:          boolean(raw, userAliases["isBlocked"]),
		PreferredCompanies: companies(raw, userAliases["preferredCompanies"]),
		CreatedAt:          timeAt(raw, userAliases["createdAt"]),
		UpdatedAt:          timeAt(raw, userAliases["updatedAt"]),
		CreatedBy:          str(raw, userAliases["createdBy"]),
		UpdatedBy:          str(raw, userAliases["updatedBy"]),
	}
	u.ProfileScore = profileScore(u)
	return u
}

// Team normalizes a raw team document. The three member counters are
// independent stored integers and are not reconciled against membership.
func Team(id string, raw map[string]interface{}) models.Team {
	stats := nested(raw, "stats", "statistics", "usage")
	return models.Team{
		TeamID:          id,
		Name:            str(raw, teamAliases["name"]),
		TeamCode:        str(raw, teamAliases["teamCode"]),
		Owner:           str(raw, teamAliases["owner"]),
		ActiveMembers:   integer(raw, teamAliases["activeMembers"]),
		MemberCount:     integer(raw, teamAliases["memberCount"]),
		PendingRequests: integer(raw, teamAliases["pendingRequests"]),
		Stats: models.TeamStats{
			Uploads:    integer(stats, teamStatsAliases["uploads"]),
			DistanceKm: number(stats, teamStatsAliases["distanceKm"]),
			Visits:     integer(stats, teamStatsAliases["visits"]),
			FuelLitres: number(stats, teamStatsAliases["fuelLitres"]),
		},
		CreatedAt: timeAt(raw, teamAliases["createdAt"]),
		UpdatedAt: timeAt(raw, teamAliases["updatedAt"]),
		CreatedBy: str(raw, teamAliases["createdBy"]),
		UpdatedBy: str(raw, teamAliases["updatedBy"]),
	}
}

// Pump normalizes a raw petrol pump document.
func Pump(id string, raw map[string]interface{}) models.PetrolPump {
	return models.PetrolPump{
		PumpID:         id,
		CustomerName:   str(raw, pumpAliases["customerName"]),
		DealerName:     str(raw, pumpAliases["dealerName"]),
		Company:        models.Company(strings.ToUpper(str(raw, pumpAliases["company"]))),
		Zone:           str(raw, pumpAliases["zone"]),
		SalesArea:      str(raw, pumpAliases["salesArea"]),
		CoClDo:         str(raw, pumpAliases["coClDo"]),
		RegionalOffice: str(raw, pumpAliases["regionalOffice"]),
		District:       str(raw, pumpAliases["district"]),
		SapCode:        str(raw, pumpAliases["sapCode"]),
		AddressLine1:   str(raw, pumpAliases["addressLine1"]),
		AddressLine2:   str(raw, pumpAliases["addressLine2"]),
		Pincode:        str(raw, pumpAliases["pincode"]),
		Contact:        str(raw, pumpAliases["contact"]),
		Location:       geoPoint(raw),
		Verified:       boolean(raw, pumpAliases["verified"]),
		Active:         boolean(raw, pumpAliases["active"]),
		CreatedAt:      timeAt(raw, pumpAliases["createdAt"]),
		UpdatedAt:      timeAt(raw, pumpAliases["updatedAt"]),
		CreatedBy:      str(raw, pumpAliases["createdBy"]),
		UpdatedBy:      str(raw, pumpAliases["updatedBy"]),
	}
}

// Request normalizes a raw pump request document. A document with no
// recognizable status is treated as pending.
func Request(id string, raw map[string]interface{}) models.PumpRequest {
	pump := Pump(id, raw)
	status := models.RequestStatus(strings.ToLower(str(raw, requestAliases["status"])))
	switch status {
	case models.RequestPending, models.RequestApproved, models.RequestRejected:
	default:
		status = models.RequestPending
	}
	return models.PumpRequest{
		RequestID:      id,
		CustomerName:   pump.CustomerName,
		DealerName:     pump.DealerName,
		Company:        pump.Company,
		Zone:           pump.Zone,
		SalesArea:      pump.SalesArea,
		CoClDo:         pump.CoClDo,
		RegionalOffice: pump.RegionalOffice,
		District:       pump.District,
		SapCode:        pump.SapCode,
		AddressLine1:   pump.AddressLine1,
		AddressLine2:   pump.AddressLine2,
		Pincode:        pump.Pincode,
		Contact:        pump.Contact,
		Location:       pump.Location,
		Status:         status,
		ReviewedBy:     str(raw, requestAliases["reviewedBy"]),
		ReviewedAt:     timeAt(raw, requestAliases["reviewedAt"]),
		ReviewNotes:    str(raw, requestAliases["reviewNotes"]),
		CreatedAt:      pump.CreatedAt,
		UpdatedAt:      pump.UpdatedAt,
		CreatedBy:      pump.CreatedBy,
		UpdatedBy:      pump.UpdatedBy,
	}
}

// MobileDigits reduces a mobile number to its last 10 digits for comparison.
// "+91XXXXXXXXXX", "91XXXXXXXXXX" and "XXXXXXXXXX" all reduce to the same
// value.
func MobileDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// Timestamp coerces a stored timestamp into a comparable instant. Accepts a
// native time.Time, an ISO-8601 string, or a map with a "seconds" component.
// Anything else resolves to the zero time.
func Timestamp(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed
		}
	case map[string]interface{}:
		for _, key := range []string{"seconds", "_seconds"} {
			if secs, ok := t[key]; ok {
				if n := toFloat(secs); n != 0 {
					return time.Unix(int64(n), 0).UTC()
				}
			}
		}
	}
	return time.Time{}
}

// --- field extraction helpers ---

// str returns the first present key's value coerced to string. Numeric values
// (legacy contact numbers) coerce to their decimal form; a legacy
// {phone: string} object coerces to its phone; unrecognized shapes resolve
// to "".
func str(raw map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s := coerceString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func coerceString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case map[string]interface{}:
		// Legacy contact shape { phone: "..." }. Any other object shape is
		// treated as empty rather than guessed at.
		if phone, ok := s["phone"]; ok {
			return coerceString(phone)
		}
	}
	return ""
}

func number(raw map[string]interface{}, keys []string) float64 {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if n := toFloat(v); n != 0 {
				return n
			}
		}
	}
	return 0
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}
	return 0
}

func integer(raw map[string]interface{}, keys []string) int {
	return int(number(raw, keys))
}

func boolean(raw map[string]interface{}, keys []string) bool {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			switch b := v.(type) {
			case bool:
				return b
			case string:
				return strings.EqualFold(b, "true") || b == "1"
			}
		}
	}
	return false
}

func timeAt(raw map[string]interface{}, keys []string) time.Time {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if t := Timestamp(v); !t.IsZero() {
				return t
			}
		}
	}
	return time.Time{}
}

func nested(raw map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if v, ok := raw[key].(map[string]interface{}); ok {
			return v
		}
	}
	return map[string]interface{}{}
}

// geoPoint assembles coordinates from a nested location object or from the
// flat legacy keys (Lat/Long) older documents carry.
func geoPoint(raw map[string]interface{}) models.GeoPoint {
	loc := nested(raw, locationKeys...)
	lat := number(loc, latitudeKeys)
	if lat == 0 {
		lat = number(raw, latitudeKeys)
	}
	lon := number(loc, longitudeKeys)
	if lon == 0 {
		lon = number(raw, longitudeKeys)
	}
	return models.GeoPoint{Latitude: lat, Longitude: lon}
}

func companies(raw map[string]interface{}, keys []string) []models.Company {
	var out []models.Company
	for _, key := range keys {
		list, ok := raw[key].([]interface{})
		if !ok {
			continue
		}
		for _, item := range list {
			name := models.Company(strings.ToUpper(coerceString(item)))
			for _, known := range models.Companies {
				if name == known {
					out = append(out, name)
					break
				}
			}
		}
		if len(out) > 0 {
			break
		}
	}
	return out
}

// profileScore derives the completeness score from the identity fields. It is
// never stored; the list view recomputes it on every fetch.
func profileScore(u models.User) int {
	total := 6
	filled := 0
	if u.FirstName != "" {
		filled++
	}
	if u.LastName != "" {
		filled++
	}
	if u.Mobile != "" {
		filled++
	}
	if u.Email != "" {
		filled++
	}
	if u.TeamCode != "" {
		filled++
	}
	if len(u.PreferredCompanies) > 0 {
		filled++
	}
	return filled * 100 / total
}
