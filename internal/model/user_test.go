package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserCan(t *testing.T) {
	tests := []struct {
		name string
		user User
		code string
		want bool
	}{
		{
			name: "admin passes any check",
			user: User{IsAdmin: true},
			code: "delete_workers",
			want: true,
		},
		{
			name: "privilege held",
			user: User{Privileges: []Privilege{{Code: "view_workers"}, {Code: "add_workers"}}},
			code: "add_workers",
			want: true,
		},
		{
			name: "privilege missing",
			user: User{Privileges: []Privilege{{Code: "view_workers"}}},
			code: "delete_workers",
			want: false,
		},
		{
			name: "empty privilege set",
			user: User{},
			code: "view_dashboard",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.Can(tt.code))
		})
	}
}

func TestUserPassword(t *testing.T) {
	u := User{}
	assert.NoError(t, u.SetPassword("secret123"))
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}
