package contact

import (
	"context"
	"errors"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/nyaruka/phonenumbers"

	"contactbook/internal/domain"
	"contactbook/internal/storage"
)

// User-facing rule messages, kept verbatim from the original application.
const (
	MsgNameRequired  = "Nama wajib diisi!"
	MsgPhoneRequired = "No HP wajib diisi!"
	MsgEmailRequired = "Email wajib diisi!"
	MsgEmailInvalid  = "Email tidak valid!"
	MsgPhoneInvalid  = "No HP tidak valid!"
	MsgDuplicateName = "Nama contact sudah digunakan!"
)

// DefaultPhoneRegion is the locale whose mobile numbering plan phone values
// must satisfy.
const DefaultPhoneRegion = "ID"

// NameFinder is the slice of the contact store the uniqueness rule needs.
type NameFinder interface {
	FindByName(ctx context.Context, name string) (domain.Contact, error)
}

// Rule is a single independent validation check. Each rule yields zero or one
// field error; rules never short-circuit each other, so a payload with a bad
// email and a duplicate name reports both. nameBefore is empty in add mode
// and carries the pre-edit name in edit mode.
type Rule func(ctx context.Context, fields domain.ContactFields, nameBefore string) (*domain.FieldError, error)

// Validator runs an ordered list of rules over a candidate payload and
// aggregates their errors. The syntax rules are pure; the uniqueness rule
// reads from the store, which is why Validate takes a context.
type Validator struct {
	rules []Rule
}

// NewValidator assembles the rule list: required fields, email syntax, phone
// syntax for the given region, and name uniqueness against the store.
func NewValidator(finder NameFinder, phoneRegion string) *Validator {
	if phoneRegion == "" {
		phoneRegion = DefaultPhoneRegion
	}
	return &Validator{
		rules: []Rule{
			requiredRule(domain.FieldName, MsgNameRequired, func(f domain.ContactFields) string { return f.Name }),
			requiredRule(domain.FieldPhone, MsgPhoneRequired, func(f domain.ContactFields) string { return f.Phone }),
			requiredRule(domain.FieldEmail, MsgEmailRequired, func(f domain.ContactFields) string { return f.Email }),
			emailRule(),
			phoneRule(phoneRegion),
			uniqueNameRule(finder),
		},
	}
}

// Validate runs every rule and returns the accumulated field errors in rule
// order. A non-nil error means a rule could not run at all (store failure)
// and the result is unusable.
func (v *Validator) Validate(ctx context.Context, fields domain.ContactFields, nameBefore string) ([]domain.FieldError, error) {
	var fieldErrs []domain.FieldError
	for _, rule := range v.rules {
		fe, err := rule(ctx, fields, nameBefore)
		if err != nil {
			return nil, err
		}
		if fe != nil {
			fieldErrs = append(fieldErrs, *fe)
		}
	}
	return fieldErrs, nil
}

func requiredRule(field, message string, pick func(domain.ContactFields) string) Rule {
	return func(_ context.Context, fields domain.ContactFields, _ string) (*domain.FieldError, error) {
		if strings.TrimSpace(pick(fields)) == "" {
			return &domain.FieldError{Field: field, Message: message}, nil
		}
		return nil, nil
	}
}

// emailRule leaves the empty case to the required rule so a blank email does
// not report twice.
func emailRule() Rule {
	return func(_ context.Context, fields domain.ContactFields, _ string) (*domain.FieldError, error) {
		if fields.Email == "" {
			return nil, nil
		}
		if !govalidator.IsEmail(fields.Email) {
			return &domain.FieldError{Field: domain.FieldEmail, Message: MsgEmailInvalid}, nil
		}
		return nil, nil
	}
}

// phoneRule accepts numbers that parse under the region's numbering plan and
// are valid mobile numbers there.
func phoneRule(region string) Rule {
	return func(_ context.Context, fields domain.ContactFields, _ string) (*domain.FieldError, error) {
		if fields.Phone == "" {
			return nil, nil
		}
		num, err := phonenumbers.Parse(fields.Phone, region)
		if err != nil || !phonenumbers.IsValidNumberForRegion(num, region) {
			return &domain.FieldError{Field: domain.FieldPhone, Message: MsgPhoneInvalid}, nil
		}
		switch phonenumbers.GetNumberType(num) {
		case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
			return nil, nil
		default:
			return &domain.FieldError{Field: domain.FieldPhone, Message: MsgPhoneInvalid}, nil
		}
	}
}

// uniqueNameRule flags a name already used by another contact. In edit mode
// an unchanged name never conflicts, even though the contact itself holds it.
func uniqueNameRule(finder NameFinder) Rule {
	return func(ctx context.Context, fields domain.ContactFields, nameBefore string) (*domain.FieldError, error) {
		if fields.Name == "" || fields.Name == nameBefore {
			return nil, nil
		}
		_, err := finder.FindByName(ctx, fields.Name)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &domain.FieldError{Field: domain.FieldName, Message: MsgDuplicateName}, nil
	}
}
