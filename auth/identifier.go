package auth

import "regexp"

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-\(\)]+$`)
	nonDigits    = regexp.MustCompile(`[^0-9]`)
)

// NormalizeIdentifier turns phone numbers into E.164 form and leaves anything
// else (email addresses) untouched. Ten digit numbers are assumed to be North
// American and get a +1 prefix; other lengths only get a leading +.
func NormalizeIdentifier(identifier string) string {
	if !phonePattern.MatchString(identifier) {
		return identifier
	}

	digits := nonDigits.ReplaceAllString(identifier, "")
	if len(digits) == 10 {
		return "+1" + digits
	}
	return "+" + digits
}
