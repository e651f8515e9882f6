package validation

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail does a shape check only; deliverability is the mail
// provider's problem.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
