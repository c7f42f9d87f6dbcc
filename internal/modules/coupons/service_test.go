package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
)

func validInput() Input {
	return Input{
		Code:          "welcome10",
		Name:          "Welcome",
		DiscountType:  TypePercentage,
		DiscountValue: 10,
		ValidFrom:     time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func TestCreateNormalizesCode(t *testing.T) {
	rec := &notify.Recorder{}
	svc := NewService(newMemRepo(), nil, rec)

	c, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", c.Code)
	assert.Equal(t, 9, c.ValidFrom.Hour())
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Success, last.Kind)
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)
	in := validInput()
	in.DiscountValue = 150
	_, err := svc.Create(context.Background(), in)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Equal(t, MsgPercentMax, ae.Fields["discountValue"])
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)
	ctx := context.Background()
	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validInput())
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Conflict, ae.Kind)
	assert.Contains(t, ae.Fields, "code")
}

func TestUpdateUsageBelowUsed(t *testing.T) {
	repo := newMemRepo(Coupon{ID: "c1", Code: "WELCOME10", UsedCount: 7})
	svc := NewService(repo, nil, nil)

	in := validInput()
	limit := 5
	in.UsageLimit = &limit
	_, err := svc.Update(context.Background(), "c1", in)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, ae.Fields, "usageLimit")

	limit = 7
	c, err := svc.Update(context.Background(), "c1", in)
	require.NoError(t, err)
	assert.Equal(t, 7, c.UsedCount)
	assert.Equal(t, 7, *c.UsageLimit)
}

func TestGetAndDeleteNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)
	_, err := svc.Get(context.Background(), "nope")
	assert.Equal(t, 404, apperr.HTTPStatus(err))
	assert.Equal(t, 404, apperr.HTTPStatus(svc.Delete(context.Background(), "nope")))
}

func TestStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.Equal(t, StatusInactive, Coupon{IsActive: false}.Status(now))
	assert.Equal(t, StatusExpired, Coupon{IsActive: true, ValidUntil: &past}.Status(now))
	assert.Equal(t, StatusScheduled, Coupon{IsActive: true, ValidFrom: future}.Status(now))
	assert.Equal(t, StatusActive, Coupon{IsActive: true, ValidFrom: past, ValidUntil: &future}.Status(now))
}

func TestListFiltersByStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	repo := newMemRepo(
		Coupon{ID: "a", Code: "A", IsActive: true, ValidFrom: past},
		Coupon{ID: "b", Code: "B", IsActive: false},
	)
	svc := NewService(repo, nil, nil)
	res, err := svc.List(context.Background(), paging.Params{Status: StatusActive}.Normalize(0))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "A", res.Items[0].Code)
}

func TestCreateOrdersExactTimestamps(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)
	ctx := context.Background()
	est := time.FixedZone("EST", -5*60*60)

	in := validInput()
	in.ValidFrom = time.Date(2024, 1, 10, 23, 0, 0, 0, est)
	until := time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC)
	in.ValidUntil = &until
	_, err := svc.Create(ctx, in)
	ae, ok := apperr.As(err)
	require.True(t, ok, "until before from must be rejected: %v", err)
	assert.Equal(t, MsgUntilAfterFrom, ae.Fields["validUntil"])

	in = validInput()
	in.ValidFrom = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	until = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	in.ValidUntil = &until
	c, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, c.ValidFrom.Equal(in.ValidFrom))
	assert.True(t, c.ValidUntil.Equal(until))

	in = validInput()
	in.Code = "SAME"
	in.ValidFrom = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	same := in.ValidFrom
	in.ValidUntil = &same
	_, err = svc.Create(ctx, in)
	ae, ok = apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgUntilAfterFrom, ae.Fields["validUntil"])
}
