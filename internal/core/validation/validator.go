// Package validation checks site payloads against the form schema and turns
// failures into per-field messages the form can display.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/ports"
)

var themeColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Validator wraps go-playground/validator with the site schema rules. It also
// satisfies echo.Validator so handlers can call c.Validate(req).
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("themecolor", func(fl validator.FieldLevel) bool {
		return themeColorPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register themecolor: %v", err))
	}
	return &Validator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (v *Validator) Validate(i any) error {
	if err := v.v.Struct(i); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Create validates a creation payload and applies defaults.
func (v *Validator) Create(in ports.CreateSiteInput) (domain.SiteInput, error) {
	if err := v.Validate(in); err != nil {
		return domain.SiteInput{}, err
	}

	out := domain.SiteInput{
		BusinessName:         in.BusinessName,
		ContactInfo:          in.ContactInfo,
		Description:          in.Description,
		Images:               nonNil(in.Images),
		SocialLinks:          nonNil(in.SocialLinks),
		ThemeColor:           domain.DefaultThemeColor,
		Slug:                 in.Slug,
		InterestedInGiftCard: *in.InterestedInGiftCard,
	}
	if in.LogoURL != nil {
		out.LogoURL = *in.LogoURL
	}
	if in.ThemeColor != nil {
		out.ThemeColor = *in.ThemeColor
	}
	return out, nil
}

// Update validates a partial payload. Absent fields stay nil in the patch.
func (v *Validator) Update(in ports.UpdateSiteInput) (domain.SitePatch, error) {
	if err := v.Validate(in); err != nil {
		return domain.SitePatch{}, err
	}
	return domain.SitePatch{
		BusinessName:         in.BusinessName,
		ContactInfo:          in.ContactInfo,
		Description:          in.Description,
		LogoURL:              in.LogoURL,
		Images:               in.Images,
		SocialLinks:          in.SocialLinks,
		ThemeColor:           in.ThemeColor,
		Slug:                 in.Slug,
		InterestedInGiftCard: in.InterestedInGiftCard,
	}, nil
}

func toValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, domain.FieldError{
			Path:    fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldPath drops the struct name from the namespace: "images[1]", "slug".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
