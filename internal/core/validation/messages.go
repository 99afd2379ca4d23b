package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// messages holds the form copy per top-level field.
var messages = map[string]string{
	"businessName":         "Business name is required",
	"contactInfo":          "Contact info is required",
	"description":          "Description is required",
	"slug":                 "Slug is required",
	"interestedInGiftCard": "Please tell us whether you are interested in a gift card",
	"logoUrl":              "Please provide a valid logo URL",
	"images":               "Please provide valid image URLs",
	"socialLinks":          "Please provide valid social media URLs",
	"themeColor":           "Invalid color hex code",
	"username":             "Username is required",
	"password":             "Password is required",
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
