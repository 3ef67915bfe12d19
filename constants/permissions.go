package constants

// Organization permissions
const (
	PermAdminFull    = "survey-booking.admin.full-permit"
	PermSurveyorFull = "survey-booking.surveyor.full-permit"
	PermClientFull   = "survey-booking.client.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	StaffPermissions = []string{
		PermAdminFull,
		PermSurveyorFull,
	}

	RolePermissions = map[string][]string{
		"admin":    {PermAdminFull},
		"surveyor": {PermSurveyorFull},
		"client":   {PermClientFull},
	}
)
