package normalize

// Alias tables for historical field names. The first entry of each list is
// the canonical camelCase key; legacy aliases follow in fixed precedence
// order. Lookup always prefers the earliest key present in the document.

var userAliases = map[string][]string{
	"firstName":          {"firstName", "First Name", "first_name", "fname"},
	"lastName":           {"lastName", "Last Name", "last_name", "lname"},
	"mobile":             {"mobile", "mobileNumber", "Mobile", "phone", "Contact details"},
	"email":              {"email", "Email", "emailId", "email_id"},
	"userType":           {"userType", "User Type", "user_type", "role"},
	"teamCode":           {"teamCode", "team_code", "Team Code"},
	"teamName":           {"teamName", "team_name", "Team Name"},
	"isTeamOwner":        {"isTeamOwner", "is_team_owner"},
	"teamMemberStatus":   {"teamMemberStatus", "memberStatus", "team_member_status"},
	"isBlocked":          {"isBlocked", "blocked", "is_blocked"},
	"preferredCompanies": {"preferredCompanies", "preferred_companies", "companies"},
	"createdAt":          {"createdAt", "created_at", "Created At", "timestamp"},
	"updatedAt":          {"updatedAt", "updated_at"},
	"createdBy":          {"createdBy", "created_by"},
	"updatedBy":          {"updatedBy", "updated_by"},
}

var teamAliases = map[string][]string{
	"name":            {"name", "teamName", "Team Name", "team_name"},
	"teamCode":        {"teamCode", "code", "team_code", "Team Code"},
	"owner":           {"owner", "teamOwner", "ownerName", "Owner"},
	"activeMembers":   {"activeMembers", "active_members"},
	"memberCount":     {"memberCount", "members", "member_count"},
	"pendingRequests": {"pendingRequests", "pending_requests"},
	"createdAt":       {"createdAt", "created_at", "timestamp"},
	"updatedAt":       {"updatedAt", "updated_at"},
	"createdBy":       {"createdBy", "created_by"},
	"updatedBy":       {"updatedBy", "updated_by"},
}

var teamStatsAliases = map[string][]string{
	"uploads":    {"uploads", "totalUploads", "Uploads"},
	"distanceKm": {"distanceKm", "distance", "totalDistance", "Distance"},
	"visits":     {"visits", "totalVisits", "Visits"},
	"fuelLitres": {"fuelLitres", "fuel", "fuelConsumption", "Fuel"},
}

var pumpAliases = map[string][]string{
	"customerName":   {"customerName", "Customer Name", "customer_name"},
	"dealerName":     {"dealerName", "Dealer Name", "dealer_name"},
	"company":        {"company", "Company", "oilCompany", "Oil Company"},
	"zone":           {"zone", "Zone"},
	"salesArea":      {"salesArea", "Sales Area", "sales_area"},
	"coClDo":         {"coClDo", "CO/CL/DO", "co_cl_do"},
	"regionalOffice": {"regionalOffice", "Regional office", "regional_office", "RO"},
	"district":       {"district", "District"},
	"sapCode":        {"sapCode", "SAP Code", "sap_code", "SAP"},
	"addressLine1":   {"addressLine1", "Address Line 1", "address1", "address"},
	"addressLine2":   {"addressLine2", "Address Line 2", "address2"},
	"pincode":        {"pincode", "Pincode", "pin_code", "PIN"},
	"contact":        {"contact", "contactDetails", "Contact details", "Contact", "phone"},
	"verified":       {"verified", "isVerified", "Verified"},
	"active":         {"active", "isActive", "Active"},
	"createdAt":      {"createdAt", "created_at", "timestamp"},
	"updatedAt":      {"updatedAt", "updated_at"},
	"createdBy":      {"createdBy", "created_by"},
	"updatedBy":      {"updatedBy", "updated_by"},
}

var requestAliases = map[string][]string{
	"status":      {"status", "Status", "requestStatus"},
	"reviewedBy":  {"reviewedBy", "approvedBy", "rejectedBy", "reviewed_by"},
	"reviewedAt":  {"reviewedAt", "approvedAt", "rejectedAt", "reviewed_at"},
	"reviewNotes": {"reviewNotes", "notes", "reason", "remarks"},
}

// Coordinate keys. Nested objects are consulted first, then the flat legacy
// keys found in older documents.
var (
	locationKeys  = []string{"location", "geo", "coordinates"}
	latitudeKeys  = []string{"latitude", "lat", "Lat"}
	longitudeKeys = []string{"longitude", "lng", "lon", "Long"}
)
