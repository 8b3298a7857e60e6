package schema

// EmployeeOnboarding returns the form definition served by the application.
// The content is a fixed product requirement: labels, options, and rule
// values must not drift, since stored submissions are keyed by these labels.
func EmployeeOnboarding() Schema {
	return Schema{
		Title:       "Employee Onboarding Form",
		Description: "Please fill out the details to onboard the new employee.",
		Fields: []Field{
			{
				Label:       "Full Name",
				Type:        FieldTypeText,
				Placeholder: "Enter full name",
				Validations: Validations{
					Required:  true,
					MinLength: intRule(3),
					MaxLength: intRule(50),
				},
			},
			{
				Label:       "Age",
				Type:        FieldTypeNumber,
				Placeholder: "Enter age",
				Validations: Validations{
					Required: true,
					Min:      numRule(18),
					Max:      numRule(65),
				},
			},
			{
				Label:       "Department",
				Type:        FieldTypeSelect,
				Placeholder: "Select department",
				Options:     []string{"Engineering", "HR", "Marketing", "Sales"},
				Validations: Validations{
					Required: true,
				},
			},
			{
				Label:       "Skills",
				Type:        FieldTypeMultiSelect,
				Placeholder: "Select skills",
				Options:     []string{"React", "Node.js", "Python", "Communication", "Management"},
				Validations: Validations{
					MinSelected: intRule(1),
					MaxSelected: intRule(5),
				},
			},
			{
				Label:       "Joining Date",
				Type:        FieldTypeDate,
				Placeholder: "Select joining date",
				Validations: Validations{
					Required: true,
					MinDate:  "2024-01-01",
				},
			},
			{
				Label:       "Notes",
				Type:        FieldTypeTextarea,
				Placeholder: "Additional notes",
				Validations: Validations{
					MaxLength: intRule(200),
				},
			},
			{
				Label: "Full Time",
				Type:  FieldTypeSwitch,
			},
		},
	}
}
