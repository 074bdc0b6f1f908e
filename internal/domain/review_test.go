package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func testAppointment() Appointment {
	return Appointment{
		ID:             10,
		StoreID:        1,
		StoreName:      "A",
		EmployeeID:     int64Ptr(2),
		EmployeeName:   "B",
		StoreServiceID: int64Ptr(3),
		ServiceNames:   []string{"Cut"},
	}
}

func TestBuildRecords_FixedOrder(t *testing.T) {
	comment := "great"
	d := &ReviewDraft{
		Appointment:    testAppointment(),
		Ratings:        Ratings{Store: 4, Stylist: 3, Service: 5},
		Comment:        &comment,
		ReviewerUserID: 99,
	}

	records := d.BuildRecords()

	require.Len(t, records, 3)
	assert.Equal(t, TargetStore, records[0].TargetType)
	assert.Equal(t, int64(1), records[0].TargetID)
	assert.Equal(t, TargetEmployee, records[1].TargetType)
	assert.Equal(t, int64(2), records[1].TargetID)
	assert.Equal(t, TargetStoreService, records[2].TargetType)
	assert.Equal(t, int64(3), records[2].TargetID)
	for _, r := range records {
		assert.Equal(t, int64(99), r.ReviewerUserID)
		assert.Equal(t, int64(10), r.AppointmentID)
		assert.Equal(t, &comment, r.Comment)
	}
}

func TestBuildRecords_SkipsUnratedAndMissingTargets(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *ReviewDraft)
		targets []TargetType
	}{
		{
			name:    "store and service only",
			mutate:  func(d *ReviewDraft) { d.Ratings = Ratings{Store: 4, Service: 5} },
			targets: []TargetType{TargetStore, TargetStoreService},
		},
		{
			name: "no employee",
			mutate: func(d *ReviewDraft) {
				d.Ratings = Ratings{Store: 1, Stylist: 5}
				d.Appointment.EmployeeID = nil
			},
			targets: []TargetType{TargetStore},
		},
		{
			name: "empty service names",
			mutate: func(d *ReviewDraft) {
				d.Ratings = Ratings{Service: 5}
				d.Appointment.ServiceNames = []string{""}
			},
			targets: []TargetType{},
		},
		{
			name: "no store service id",
			mutate: func(d *ReviewDraft) {
				d.Ratings = Ratings{Stylist: 2, Service: 5}
				d.Appointment.StoreServiceID = nil
			},
			targets: []TargetType{TargetEmployee},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &ReviewDraft{Appointment: testAppointment(), ReviewerUserID: 99}
			tt.mutate(d)

			got := make([]TargetType, 0)
			for _, r := range d.BuildRecords() {
				got = append(got, r.TargetType)
			}
			assert.Equal(t, tt.targets, got)
		})
	}
}

func TestRatings(t *testing.T) {
	assert.True(t, Ratings{}.IsEmpty())
	assert.False(t, Ratings{Service: 1}.IsEmpty())
	assert.True(t, Ratings{Store: 5, Stylist: 0, Service: 3}.InRange())
	assert.False(t, Ratings{Store: 6}.InRange())
	assert.False(t, Ratings{Stylist: -1}.InRange())
}

func TestIdempotencyKey_StablePerAppointmentAndTarget(t *testing.T) {
	a := ReviewRecord{AppointmentID: 10, TargetType: TargetStore, Rating: 5}
	b := ReviewRecord{AppointmentID: 10, TargetType: TargetStore, Rating: 1, ReviewerUserID: 7}
	c := ReviewRecord{AppointmentID: 10, TargetType: TargetEmployee}
	d := ReviewRecord{AppointmentID: 11, TargetType: TargetStore}

	assert.Equal(t, a.IdempotencyKey(), b.IdempotencyKey())
	assert.NotEqual(t, a.IdempotencyKey(), c.IdempotencyKey())
	assert.NotEqual(t, a.IdempotencyKey(), d.IdempotencyKey())
}

func TestAccessSession(t *testing.T) {
	s := &AccessSession{Subject: "u1", Roles: []string{"customer"}}

	assert.True(t, s.HasAnyRole("admin", "customer"))
	assert.False(t, s.HasAnyRole("admin"))
	assert.True(t, s.Owns("u1"))
	assert.False(t, s.Owns("u2"))
	assert.False(t, (&AccessSession{}).Owns(""))
}
