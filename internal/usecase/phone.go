package usecase

import "regexp"

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything that is not a decimal digit, including
// a leading "+". Total function: empty in, empty out.
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}
	return nonDigits.ReplaceAllString(phone, "")
}

// PhoneMatches compares the phone on file with the caller-supplied one.
// Exact match on the normalized forms, or match on the last 9 digits to
// tolerate +91 / leading-zero variation. Missing data never matches.
func PhoneMatches(dbPhone, callerPhone string) bool {
	dbNorm := NormalizePhone(dbPhone)
	callerNorm := NormalizePhone(callerPhone)

	if dbNorm == "" || callerNorm == "" {
		return false
	}
	if dbNorm == callerNorm {
		return true
	}
	if len(dbNorm) < 9 || len(callerNorm) < 9 {
		return false
	}

	return dbNorm[len(dbNorm)-9:] == callerNorm[len(callerNorm)-9:]
}
