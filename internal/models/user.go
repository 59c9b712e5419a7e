package models

// Role identifies which dashboard a user belongs to.
type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleTutor       Role = "TUTOR"
	RoleCoordinator Role = "COORDINATOR"
)

// Valid reports whether the role is one the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleCoordinator:
		return true
	}
	return false
}

// User is the backend's account record. Profile fields are mutated only via
// explicit update/activate/deactivate calls, never derived locally.
type User struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        Role   `json:"role,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Active treats a missing isActive flag as active, matching backend defaults.
func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// Student extends User with study profile attributes.
type Student struct {
	User
	Major           string   `json:"major,omitempty"`
	GPA             float64  `json:"gpa,omitempty"`
	EnrolledCourses []string `json:"enrolledCourses,omitempty"`
}

// Tutor extends User with tutoring profile attributes.
type Tutor struct {
	User
	ExpertiseAreas []string `json:"expertiseAreas,omitempty"`
	Biography      string   `json:"biography,omitempty"`
	AverageRating  float64  `json:"averageRating,omitempty"`
}
