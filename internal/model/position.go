package model

import "github.com/SergeyParamoshkin/admin/client"

var Departments = []string{
	"Development",
	"Design",
	"Marketing",
	"Sales",
	"Operations",
	"Human Resources",
	"Finance",
	"Legal",
	"Product Management",
	"Customer Support",
	"Research & Development",
}

var EmploymentTypes = []string{
	"Full-time",
	"Part-time",
	"Contract",
	"Temporary",
	"Internship",
	"Freelance",
}

var Locations = []string{"Remote", "Hybrid", "On-site", "Flexible"}

var ExperienceLevels = []string{
	"Entry Level (0-2 years)",
	"Junior (2-4 years)",
	"Mid-Level (4-6 years)",
	"Senior (6-8 years)",
	"Lead (8-10 years)",
	"Principal (10+ years)",
}

type Position struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Department   string       `json:"department"`
	Type         string       `json:"type"`
	Location     string       `json:"location"`
	Experience   string       `json:"experience"`
	Description  string       `json:"description"`
	Requirements Requirements `json:"requirements"`
}

func PositionFromServer(p client.ServerPosition) Position {
	return Position{
		ID:           p.ID,
		Title:        p.Title,
		Department:   p.Department,
		Type:         p.Type,
		Location:     p.Location,
		Experience:   p.Experience,
		Description:  p.Description,
		Requirements: Requirements(p.Requirements),
	}
}

func PositionsFromServer(in []client.ServerPosition) []Position {
	out := make([]Position, 0, len(in))
	for _, p := range in {
		out = append(out, PositionFromServer(p))
	}

	return out
}

func IsDepartment(s string) bool      { return contains(Departments, s) }
func IsEmploymentType(s string) bool  { return contains(EmploymentTypes, s) }
func IsLocation(s string) bool        { return contains(Locations, s) }
func IsExperienceLevel(s string) bool { return contains(ExperienceLevels, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
