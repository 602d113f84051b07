package normalize

import (
	"testing"

	"careerwatch/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestEmploymentType(t *testing.T) {
	tests := []struct {
		raw  string
		want model.EmploymentType
	}{
		{"Full time", model.EmploymentFullTime},
		{"Vollzeit", model.EmploymentFullTime},
		{"Part-Time", model.EmploymentPartTime},
		{"Teilzeit (20h)", model.EmploymentPartTime},
		{"Contract", model.EmploymentContract},
		{"Freiberufliche Tätigkeit", model.EmploymentContract},
		{"Internship", model.EmploymentInternship},
		{"Praktikum", model.EmploymentInternship},
		{"Werkstudent", model.EmploymentInternship},
		{"Temporary", model.EmploymentTemporary},
		{"Befristung: 12 Monate", model.EmploymentTemporary},
		{"", ""},
		{"Sonstiges", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EmploymentType(tt.raw), "raw=%q", tt.raw)
	}
}

func TestWorkplace(t *testing.T) {
	tests := []struct {
		raw  string
		want model.Workplace
	}{
		{"Home Office", model.WorkplaceRemote},
		{"Remote", model.WorkplaceRemote},
		{"Telearbeit möglich", model.WorkplaceRemote},
		{"Vollständig remote", model.WorkplaceRemote},
		{"Hybrid (3 Tage Büro)", model.WorkplaceHybrid},
		{"Flexible", model.WorkplaceHybrid},
		{"Vor Ort", model.WorkplaceOnsite},
		{"Onsite", model.WorkplaceOnsite},
		{"Büro Mainz", model.WorkplaceOnsite},
		{"", ""},
		{"tbd", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Workplace(tt.raw), "raw=%q", tt.raw)
	}
}

func TestSplitLocations(t *testing.T) {
	assert.Equal(t,
		[]string{"Mainz", "München", "Berlin"},
		SplitLocations("Mainz | München/Berlin"))
	assert.Equal(t,
		[]string{"London", "Brentford"},
		SplitLocations("London; Brentford"))
	assert.Nil(t, SplitLocations("  "))
}

func TestLocations_DedupAndNoise(t *testing.T) {
	primary, all := Locations("Mainz", "mainz", "3 Locations", "Multiple Locations", "Berlin", "MAINZ")
	assert.Equal(t, "Mainz", primary)
	assert.Equal(t, []string{"Mainz", "Berlin"}, all)

	primary, all = Locations("2 Standorte", "Remote")
	assert.Equal(t, "", primary)
	assert.Empty(t, all)
}
