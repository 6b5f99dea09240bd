package dateutil

// AgeAtYearEnd returns the age someone born in birthYear reaches during calendarYear.
// RMD divisors are keyed on this age.
func AgeAtYearEnd(birthYear, calendarYear int) int {
	return calendarYear - birthYear
}

// GetRMDAge returns the age when RMDs start for a given birth year (SECURE 2.0 Act).
func GetRMDAge(birthYear int) int {
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear >= 1951 && birthYear <= 1959:
		return 73
	default: // 1960 and later
		return 75
	}
}

// BirthYearFromAge infers the birth year of someone who is age during calendarYear.
func BirthYearFromAge(age, calendarYear int) int {
	return calendarYear - age
}
