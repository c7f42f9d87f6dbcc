package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/wizard"
)

func TestNextRequiresCode(t *testing.T) {
	c := wizard.New(Form, func(context.Context, Input) error { return nil })

	err := c.Next()
	ve, ok := wizard.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgCodeRequired, ve.Fields["code"])
	assert.Equal(t, 0, c.State().Step)
}

func TestCodePattern(t *testing.T) {
	errs := Form.Validate(0, wizard.FormData{"code": "abc-1", "name": "x"})
	assert.Equal(t, MsgCodePattern, errs["code"])

	errs = Form.Validate(0, wizard.FormData{"code": "ABC-1", "name": "x"})
	assert.NotContains(t, errs, "code")
}

func TestPercentageCap(t *testing.T) {
	d := wizard.FormData{"discountType": TypePercentage, "discountValue": 150.0}
	assert.Equal(t, MsgPercentMax, Form.Validate(1, d)["discountValue"])

	d["discountValue"] = 50.0
	assert.NotContains(t, Form.Validate(1, d), "discountValue")

	// fixed amounts are not capped
	d = wizard.FormData{"discountType": TypeFixed, "discountValue": "150"}
	assert.NotContains(t, Form.Validate(1, d), "discountValue")
}

func TestDiscountRules(t *testing.T) {
	errs := Form.Validate(1, wizard.FormData{
		"discountType":      "bogus",
		"discountValue":     "abc",
		"minOrderAmount":    "-5",
		"maxDiscountAmount": "0",
	})
	assert.Equal(t, MsgTypeInvalid, errs["discountType"])
	assert.Equal(t, MsgNotNumber, errs["discountValue"])
	assert.Equal(t, MsgMinOrderNegative, errs["minOrderAmount"])
	assert.Equal(t, MsgMaxDiscount, errs["maxDiscountAmount"])

	errs = Form.Validate(1, wizard.FormData{"discountType": TypeFixed, "discountValue": "0"})
	assert.Equal(t, MsgValuePositive, errs["discountValue"])
}

func TestValidityDates(t *testing.T) {
	d := wizard.FormData{"validFrom": "2024-01-10", "validUntil": "2024-01-01"}
	assert.Equal(t, MsgUntilAfterFrom, Form.Validate(2, d)["validUntil"])

	d["validUntil"] = "2024-02-01"
	assert.NotContains(t, Form.Validate(2, d), "validUntil")

	assert.Equal(t, MsgFromRequired, Form.Validate(2, wizard.FormData{})["validFrom"])
	assert.Equal(t, MsgDateInvalid, Form.Validate(2, wizard.FormData{"validFrom": "soon"})["validFrom"])
}

func TestLimits(t *testing.T) {
	errs := Form.Validate(2, wizard.FormData{"validFrom": "2024-01-10", "usageLimit": "5", "perUserLimit": "6"})
	assert.Equal(t, MsgPerUserOverUsage, errs["perUserLimit"])

	errs = Form.Validate(2, wizard.FormData{"validFrom": "2024-01-10", "usageLimit": "0"})
	assert.Equal(t, MsgUsageLimit, errs["usageLimit"])

	assert.Empty(t, Form.Validate(2, wizard.FormData{"validFrom": "2024-01-10", "usageLimit": "5", "perUserLimit": "5"}))
}

func fill(t *testing.T, c *wizard.Controller[Input], values wizard.FormData) {
	t.Helper()
	for k, v := range values {
		require.NoError(t, c.Change(k, v))
	}
}

func TestFullWizardSubmit(t *testing.T) {
	var (
		calls int
		got   Input
	)
	c := wizard.New(Form, func(_ context.Context, in Input) error {
		calls++
		got = in
		return nil
	})

	fill(t, c, wizard.FormData{"code": "SUMMER-24", "name": "Summer sale"})
	require.NoError(t, c.Next())
	fill(t, c, wizard.FormData{"discountType": TypePercentage, "discountValue": "15", "maxDiscountAmount": "40"})
	require.NoError(t, c.Next())
	fill(t, c, wizard.FormData{"validFrom": "2024-06-01", "validUntil": "2024-08-31", "usageLimit": "500"})
	require.NoError(t, c.Next())
	fill(t, c, wizard.FormData{"applicableCategories": "cat-1, cat-2", "applicableProducts": "", "isActive": "on"})

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, 1, calls)

	assert.Equal(t, []string{"cat-1", "cat-2"}, got.ApplicableCategories)
	assert.Equal(t, []string{}, got.ApplicableProducts)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got.ValidFrom)
	require.NotNil(t, got.ValidUntil)
	assert.Equal(t, time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), *got.ValidUntil)
	assert.Equal(t, 15.0, got.DiscountValue)
	require.NotNil(t, got.UsageLimit)
	assert.Equal(t, 500, *got.UsageLimit)
	assert.Nil(t, got.PerUserLimit)
	assert.True(t, got.IsActive)

	assert.ErrorIs(t, c.Submit(context.Background()), wizard.ErrCompleted)
}

func TestNewFormLocation(t *testing.T) {
	ist := time.FixedZone("TRT", 3*60*60)
	in, err := NewForm(ist).Payload(wizard.FormData{"validFrom": "2024-06-01", "discountValue": "5"})
	require.NoError(t, err)
	assert.Equal(t, ist, in.ValidFrom.Location())
}

func TestSeedRoundTrip(t *testing.T) {
	until := time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)
	limit := 10
	c := Coupon{
		Code: "X1", Name: "X", DiscountType: TypeFixed, DiscountValue: 5,
		ValidFrom: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), ValidUntil: &until,
		UsageLimit: &limit, ApplicableCategories: []string{"a", "b"}, IsActive: true,
	}
	d := Seed(c)
	assert.Equal(t, "2024-06-01", d["validFrom"])
	assert.Equal(t, "a, b", d["applicableCategories"])
	assert.Empty(t, Form.ValidateAll(d))

	in, err := Form.Payload(d)
	require.NoError(t, err)
	assert.Equal(t, c.Input().ApplicableCategories, in.ApplicableCategories)
	assert.Equal(t, 10, *in.UsageLimit)
}

func TestSeedKeepsTimeOfDay(t *testing.T) {
	from := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	c := Coupon{Code: "X1", Name: "X", DiscountType: TypeFixed, DiscountValue: 5, ValidFrom: from, IsActive: true}

	d := Seed(c)
	assert.Equal(t, "2024-06-01T14:30", d["validFrom"])

	in, err := Form.Payload(d)
	require.NoError(t, err)
	assert.True(t, in.ValidFrom.Equal(from))
}
