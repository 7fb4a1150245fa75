package seeder

// Defaults is the reference data every environment needs.
func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
	}
}

// Demo is a small staffing scenario for local development: a few employees,
// clients and projects with skill requirements and existing assignments.
func Demo() []Seeder {
	return []Seeder{
		DemoEmployeesSeeder{},
		DemoProjectsSeeder{},
	}
}
