package coupons

import (
	"regexp"
	"time"

	"pehlione.com/admin/internal/wizard"
)

const (
	MsgCodeRequired     = "Coupon code is required"
	MsgCodePattern      = "Coupon code may only contain uppercase letters, digits, hyphens and underscores"
	MsgNameRequired     = "Coupon name is required"
	MsgTypeRequired     = "Discount type is required"
	MsgTypeInvalid      = "Discount type must be percentage or fixed"
	MsgValueRequired    = "Discount value is required"
	MsgNotNumber        = "Must be a number"
	MsgValuePositive    = "Discount value must be greater than 0"
	MsgPercentMax       = "Percentage cannot exceed 100"
	MsgMinOrderNegative = "Minimum order amount cannot be negative"
	MsgMaxDiscount      = "Maximum discount must be greater than 0"
	MsgFromRequired     = "Start date is required"
	MsgDateInvalid      = "Enter a valid date"
	MsgUntilAfterFrom   = "End date must be after the start date"
	MsgUsageLimit       = "Usage limit must be greater than 0"
	MsgPerUserLimit     = "Per-user limit must be greater than 0"
	MsgPerUserOverUsage = "Per-user limit cannot exceed the usage limit"
	MsgTooManyTargets   = "At most 100 entries are allowed"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

const maxTargets = 100

// NewForm builds the four-step coupon wizard. Dates are read in loc.
func NewForm(loc *time.Location) *wizard.Schema[Input] {
	if loc == nil {
		loc = time.UTC
	}
	return &wizard.Schema[Input]{
		Entity: "coupon",
		Steps: []wizard.Step{
			{
				Name:     "basics",
				Fields:   []string{"code", "name", "description"},
				Validate: validateBasics,
			},
			{
				Name:     "discount",
				Fields:   []string{"discountType", "discountValue", "minOrderAmount", "maxDiscountAmount"},
				Validate: validateDiscount,
			},
			{
				Name:   "validity",
				Fields: []string{"validFrom", "validUntil", "usageLimit", "perUserLimit"},
				Validate: func(d wizard.FormData) wizard.FieldErrors {
					return validateValidity(d, loc)
				},
			},
			{
				Name:     "targeting",
				Fields:   []string{"applicableCategories", "applicableProducts", "isActive"},
				Validate: validateTargeting,
			},
		},
		Defaults: defaults,
		Payload: func(d wizard.FormData) (Input, error) {
			return payload(d, loc)
		},
	}
}

// Form reads dates in UTC.
var Form = NewForm(time.UTC)

func defaults() wizard.FormData {
	return wizard.FormData{
		"code":                 "",
		"name":                 "",
		"description":          "",
		"discountType":         TypePercentage,
		"discountValue":        "",
		"minOrderAmount":       "",
		"maxDiscountAmount":    "",
		"validFrom":            "",
		"validUntil":           "",
		"usageLimit":           "",
		"perUserLimit":         "",
		"applicableCategories": "",
		"applicableProducts":   "",
		"isActive":             true,
	}
}

func validateBasics(d wizard.FormData) wizard.FieldErrors {
	return wizard.Check(d).
		Required("code", MsgCodeRequired).
		Pattern("code", codePattern, MsgCodePattern).
		MaxLen("code", 40, "Coupon code is too long").
		Required("name", MsgNameRequired).
		MaxLen("name", 120, "Coupon name is too long").
		Errors()
}

func validateDiscount(d wizard.FormData) wizard.FieldErrors {
	percentage := wizard.Str(d, "discountType") == TypePercentage
	return wizard.Check(d).
		Required("discountType", MsgTypeRequired).
		OneOf("discountType", []string{TypePercentage, TypeFixed}, MsgTypeInvalid).
		Required("discountValue", MsgValueRequired).
		Numeric("discountValue", MsgNotNumber).
		Positive("discountValue", MsgValuePositive).
		When(percentage, func(c *wizard.Checker) {
			c.AtMost("discountValue", 100, MsgPercentMax)
		}).
		Numeric("minOrderAmount", MsgNotNumber).
		NonNegative("minOrderAmount", MsgMinOrderNegative).
		Numeric("maxDiscountAmount", MsgNotNumber).
		Positive("maxDiscountAmount", MsgMaxDiscount).
		Errors()
}

func validateValidity(d wizard.FormData, loc *time.Location) wizard.FieldErrors {
	c := wizard.Check(d).In(loc).
		Required("validFrom", MsgFromRequired).
		Date("validFrom", MsgDateInvalid).
		Date("validUntil", MsgDateInvalid).
		DateAfter("validUntil", "validFrom", MsgUntilAfterFrom).
		Numeric("usageLimit", MsgNotNumber).
		Positive("usageLimit", MsgUsageLimit).
		Numeric("perUserLimit", MsgNotNumber).
		Positive("perUserLimit", MsgPerUserLimit)

	usage, hasUsage, err1 := wizard.Number(d, "usageLimit")
	perUser, hasPerUser, err2 := wizard.Number(d, "perUserLimit")
	c.Custom("perUserLimit", err1 == nil && err2 == nil && hasUsage && hasPerUser && perUser > usage, MsgPerUserOverUsage)
	return c.Errors()
}

func validateTargeting(d wizard.FormData) wizard.FieldErrors {
	return wizard.Check(d).
		Custom("applicableCategories", len(wizard.List(d, "applicableCategories")) > maxTargets, MsgTooManyTargets).
		Custom("applicableProducts", len(wizard.List(d, "applicableProducts")) > maxTargets, MsgTooManyTargets).
		Errors()
}

func payload(d wizard.FormData, loc *time.Location) (Input, error) {
	var (
		in  Input
		err error
	)
	in.Code = wizard.Str(d, "code")
	in.Name = wizard.Str(d, "name")
	in.Description = wizard.Str(d, "description")
	in.DiscountType = wizard.Str(d, "discountType")
	if in.DiscountValue, err = wizard.Float(d, "discountValue"); err != nil {
		return Input{}, err
	}
	if in.MinOrderAmount, err = wizard.OptionalFloat(d, "minOrderAmount"); err != nil {
		return Input{}, err
	}
	if in.MaxDiscountAmount, err = wizard.OptionalFloat(d, "maxDiscountAmount"); err != nil {
		return Input{}, err
	}
	if in.ValidFrom, err = wizard.Date(d, "validFrom", loc); err != nil {
		return Input{}, err
	}
	if in.ValidUntil, err = wizard.OptionalDate(d, "validUntil", loc); err != nil {
		return Input{}, err
	}
	if in.UsageLimit, err = wizard.OptionalInt(d, "usageLimit"); err != nil {
		return Input{}, err
	}
	if in.PerUserLimit, err = wizard.OptionalInt(d, "perUserLimit"); err != nil {
		return Input{}, err
	}
	in.ApplicableCategories = wizard.List(d, "applicableCategories")
	in.ApplicableProducts = wizard.List(d, "applicableProducts")
	in.IsActive = wizard.Bool(d, "isActive")
	return in, nil
}

// FormData renders a payload the way the wizard holds it.
func (in Input) FormData() wizard.FormData {
	d := wizard.FormData{
		"code":                 in.Code,
		"name":                 in.Name,
		"description":          in.Description,
		"discountType":         in.DiscountType,
		"discountValue":        in.DiscountValue,
		"minOrderAmount":       optFloat(in.MinOrderAmount),
		"maxDiscountAmount":    optFloat(in.MaxDiscountAmount),
		"validFrom":            wizard.FormatDate(&in.ValidFrom),
		"validUntil":           wizard.FormatDate(in.ValidUntil),
		"usageLimit":           optInt(in.UsageLimit),
		"perUserLimit":         optInt(in.PerUserLimit),
		"applicableCategories": wizard.JoinList(in.ApplicableCategories),
		"applicableProducts":   wizard.JoinList(in.ApplicableProducts),
		"isActive":             in.IsActive,
	}
	return d
}

// Seed is the edit-wizard seed for an existing coupon.
func Seed(c Coupon) wizard.FormData { return c.Input().FormData() }

func optFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func optInt(i *int) any {
	if i == nil {
		return ""
	}
	return float64(*i)
}
