package api

import (
	"regexp"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
	registerOnce    sync.Once
)

// RegisterValidators adds the "username" and "password" tags to gin's
// binding validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logrus.Warn("binding validator is not go-playground/validator, custom rules skipped")
			return
		}
		registerRules(v, map[string]validator.Func{
			"username": validateUsername,
			"password": validatePassword,
		})
	})
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logrus.Errorf("register validation %q: %v", tag, err)
		}
	}
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// validatePassword requires at least 8 characters with a lower and an upper
// case letter, a digit and a special character.
func validatePassword(fl validator.FieldLevel) bool {
	return strongPassword(fl.Field().String())
}

func strongPassword(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return lower && upper && digit && special
}
