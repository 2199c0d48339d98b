// Package registration provides the typed record produced by a successful
// registration form submission.
package registration

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-signupform/pkg/form"
)

// Gender options in display order. The first one is the default.
var Genders = []string{"female", "male", "other"}

// FormValues is the record collected by the registration form. Age is nil
// when the user left it empty.
type FormValues struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age"`
	Gender   string `json:"gender"`
}

// FromSnapshot maps a submitted snapshot onto FormValues.
func FromSnapshot(snapshot form.Snapshot) (FormValues, error) {
	values := FormValues{
		Username: snapshot.Value("username"),
		Email:    snapshot.Value("email"),
		Password: snapshot.Value("password"),
		Gender:   snapshot.Value("gender"),
	}
	if raw := strings.TrimSpace(snapshot.Value("age")); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return FormValues{}, fmt.Errorf("registration: age %q is not an integer", raw)
		}
		values.Age = &age
	}
	return values, nil
}

// JSON serialises the record the way it is shown to the user on submit.
func (v FormValues) JSON() (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("registration: marshal: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
