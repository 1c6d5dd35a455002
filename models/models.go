// models.go
// Core data structures for the petrol pump administration backend.

package models

import (
	"time"
)

// Company is one of the oil marketing companies a pump belongs to.
type Company string

const (
	CompanyHPCL Company = "HPCL"
	CompanyBPCL Company = "BPCL"
	CompanyIOCL Company = "IOCL"
)

// Companies lists every recognized oil company.
var Companies = []Company{CompanyHPCL, CompanyBPCL, CompanyIOCL}

// UserType classifies a dashboard user. The string values mirror what the
// historical documents store, including the spaced "Team Leader" variant.
type UserType string

const (
	UserTypeUser       UserType = "user"
	UserTypeTeamLeader UserType = "Team Leader"
	UserTypeAdmin      UserType = "admin"
	UserTypeIndividual UserType = "individual"
	UserTypeTeamMember UserType = "teamMember"
	UserTypeTeamOwner  UserType = "teamOwner"
)

// MemberStatus is the user's standing within their team.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberPending  MemberStatus = "pending"
	MemberRejected MemberStatus = "rejected"
)

// RequestStatus is the workflow state of a pump onboarding request.
// pending -> approved | rejected; terminal states never transition again.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// User is a normalized dashboard user record.
// Mobile is always persisted with the +91 prefix; comparison logic must strip
// the prefix and compare the last 10 digits.
type User struct {
	UserID             string       `firestore:"userId" json:"userId"`
	FirstName          string       `firestore:"firstName" json:"firstName"`
	LastName           string       `firestore:"lastName" json:"lastName"`
	Mobile             string       `firestore:"mobile" json:"mobile"`
	Email              string       `firestore:"email" json:"email"`
	UserType           UserType     `firestore:"userType" json:"userType"`
	TeamCode           string       `firestore:"teamCode" json:"teamCode"`
	TeamName           string       `firestore:"teamName" json:"teamName"`
	IsTeamOwner        bool         `firestore:"isTeamOwner" json:"isTeamOwner"`
	TeamMemberStatus   MemberStatus `firestore:"teamMemberStatus" json:"teamMemberStatus"`
	IsBlocked          bool         `firestore:"isBlocked" json:"isBlocked"`
	ProfileScore       int          `firestore:"-" json:"profileScore"` // derived, never stored
	PreferredCompanies []Company    `firestore:"preferredCompanies" json:"preferredCompanies"`
	CreatedAt          time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time    `firestore:"updatedAt" json:"updatedAt"`
	CreatedBy          string       `firestore:"createdBy" json:"createdBy"`
	UpdatedBy          string       `firestore:"updatedBy" json:"updatedBy"`
}

// TeamStats carries a team's nested usage counters.
type TeamStats struct {
	Uploads    int     `firestore:"uploads" json:"uploads"`
	DistanceKm float64 `firestore:"distanceKm" json:"distanceKm"`
	Visits     int     `firestore:"visits" json:"visits"`
	FuelLitres float64 `firestore:"fuelLitres" json:"fuelLitres"`
}

// Team is a normalized team record. ActiveMembers, MemberCount and
// PendingRequests are independent stored integers; they are not derived from
// a membership list and are preserved as-is.
type Team struct {
	TeamID          string    `firestore:"teamId" json:"teamId"`
	Name            string    `firestore:"name" json:"name"`
	TeamCode        string    `firestore:"teamCode" json:"teamCode"`
	Owner           string    `firestore:"owner" json:"owner"`
	ActiveMembers   int       `firestore:"activeMembers" json:"activeMembers"`
	MemberCount     int       `firestore:"memberCount" json:"memberCount"`
	PendingRequests int       `firestore:"pendingRequests" json:"pendingRequests"`
	Stats           TeamStats `firestore:"stats" json:"stats"`
	CreatedAt       time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
	CreatedBy       string    `firestore:"createdBy" json:"createdBy"`
	UpdatedBy       string    `firestore:"updatedBy" json:"updatedBy"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `firestore:"latitude" json:"latitude"`
	Longitude float64 `firestore:"longitude" json:"longitude"`
}

// PetrolPump is a normalized pump listing.
type PetrolPump struct {
	PumpID         string    `firestore:"pumpId" json:"pumpId"`
	CustomerName   string    `firestore:"customerName" json:"customerName"`
	DealerName     string    `firestore:"dealerName" json:"dealerName"`
	Company        Company   `firestore:"company" json:"company"`
	Zone           string    `firestore:"zone" json:"zone"`
	SalesArea      string    `firestore:"salesArea" json:"salesArea"`
	CoClDo         string    `firestore:"coClDo" json:"coClDo"`
	RegionalOffice string    `firestore:"regionalOffice" json:"regionalOffice"`
	District       string    `firestore:"district" json:"district"`
	SapCode        string    `firestore:"sapCode" json:"sapCode"`
	AddressLine1   string    `firestore:"addressLine1" json:"addressLine1"`
	AddressLine2   string    `firestore:"addressLine2" json:"addressLine2"`
	Pincode        string    `firestore:"pincode" json:"pincode"`
	Contact        string    `firestore:"contact" json:"contact"`
	Location       GeoPoint  `firestore:"location" json:"location"`
	Verified       bool      `firestore:"verified" json:"verified"`
	Active         bool      `firestore:"active" json:"active"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
	CreatedBy      string    `firestore:"createdBy" json:"createdBy"`
	UpdatedBy      string    `firestore:"updatedBy" json:"updatedBy"`
}

// PumpRequest is a pump onboarding request: the PetrolPump shape plus the
// review workflow state.
type PumpRequest struct {
	RequestID      string        `firestore:"requestId" json:"requestId"`
	CustomerName   string        `firestore:"customerName" json:"customerName"`
	DealerName     string        `firestore:"dealerName" json:"dealerName"`
	Company        Company       `firestore:"company" json:"company"`
	Zone           string        `firestore:"zone" json:"zone"`
	SalesArea      string        `firestore:"salesArea" json:"salesArea"`
	CoClDo         string        `firestore:"coClDo" json:"coClDo"`
	RegionalOffice string        `firestore:"regionalOffice" json:"regionalOffice"`
	District       string        `firestore:"district" json:"district"`
	SapCode        string        `firestore:"sapCode" json:"sapCode"`
	AddressLine1   string        `firestore:"addressLine1" json:"addressLine1"`
	AddressLine2   string        `firestore:"addressLine2" json:"addressLine2"`
	Pincode        string        `firestore:"pincode" json:"pincode"`
	Contact        string        `firestore:"contact" json:"contact"`
	Location       GeoPoint      `firestore:"location" json:"location"`
	Status         RequestStatus `firestore:"status" json:"status"`
	ReviewedBy     string        `firestore:"reviewedBy" json:"reviewedBy"`
	ReviewedAt     time.Time     `firestore:"reviewedAt" json:"reviewedAt"`
	ReviewNotes    string        `firestore:"reviewNotes" json:"reviewNotes"`
	CreatedAt      time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `firestore:"updatedAt" json:"updatedAt"`
	CreatedBy      string        `firestore:"createdBy" json:"createdBy"`
	UpdatedBy      string        `firestore:"updatedBy" json:"updatedBy"`
}

// ResultType discriminates which entity kind a search result came from.
type ResultType string

const (
	ResultUser    ResultType = "user"
	ResultTeam    ResultType = "team"
	ResultPump    ResultType = "petrol_pump"
	ResultRequest ResultType = "request"
)

// SearchResultItem is one row of global search output. RefID points back to
// the originating document and is used only for navigation.
type SearchResultItem struct {
	Type        ResultType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Contact     string     `json:"contact,omitempty"`
	RefID       string     `json:"refId"`
}
