package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "signupform-form"
	ClassHeader  ChromeClass = "signupform-header"
	ClassField   ChromeClass = "signupform-field"
	ClassHelp    ChromeClass = "signupform-help"
	ClassError   ChromeClass = "signupform-error"
	ClassErrors  ChromeClass = "signupform-errors"
	ClassActions ChromeClass = "signupform-actions"
	ClassResult  ChromeClass = "signupform-result"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"field":   string(ClassField),
		"help":    string(ClassHelp),
		"error":   string(ClassError),
		"errors":  string(ClassErrors),
		"actions": string(ClassActions),
		"result":  string(ClassResult),
	}
}
