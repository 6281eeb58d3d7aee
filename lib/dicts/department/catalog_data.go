package departmentprovider

type subdepartment struct {
	code string
	name string
}

type department struct {
	code           string
	name           string
	subdepartments []subdepartment
}

var catalog = []department{
	{
		code: "OPCS",
		name: "Office of the Prime Cabinet Secretary",
	},
	{
		code: "SDPA",
		name: "State Department for Public Administration",
		subdepartments: []subdepartment{
			{code: "ICT", name: "Information Communication Technology"},
			{code: "FINANCE", name: "Finance"},
			{code: "ACCOUNTS", name: "Accounts"},
			{code: "HRM", name: "Human Resource Management"},
			{code: "ADMIN", name: "Administration"},
			{code: "PROCUREMENT", name: "Supply Chain Management"},
			{code: "PLANNING", name: "Planning"},
			{code: "COMMUNICATION", name: "Public Communication"},
			{code: "LEGAL", name: "Legal Services"},
		},
	},
	{
		code: "SDPS",
		name: "State Department for Public Service",
		subdepartments: []subdepartment{
			{code: "HRM", name: "Human Resource Management"},
			{code: "ICT", name: "Information Communication Technology"},
			{code: "FINANCE", name: "Finance"},
			{code: "RECORDS", name: "Records Management"},
		},
	},
	{
		code: "SDPAR",
		name: "State Department for Parliamentary Affairs",
		subdepartments: []subdepartment{
			{code: "LEGISLATION", name: "Legislative Affairs"},
			{code: "LIAISON", name: "Parliamentary Liaison"},
			{code: "ADMIN", name: "Administration"},
		},
	},
}
