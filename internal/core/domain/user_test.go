package domain

import "testing"

func TestRoleFromMetadata(t *testing.T) {
	cases := []struct {
		metadata map[string]string
		want     Role
	}{
		{map[string]string{"type": "blue"}, RoleBlue},
		{map[string]string{"type": "white"}, RoleWhite},
		{map[string]string{"type": "company"}, RoleCompany},
		{map[string]string{"type": "admin"}, RoleNone},
		{map[string]string{"type": ""}, RoleNone},
		{map[string]string{}, RoleNone},
		{nil, RoleNone},
	}
	for _, tc := range cases {
		if got := RoleFromMetadata(tc.metadata); got != tc.want {
			t.Errorf("RoleFromMetadata(%v) = %s, want %s", tc.metadata, got, tc.want)
		}
	}
}

func TestLandingPath(t *testing.T) {
	cases := []struct {
		role Role
		want string
	}{
		{RoleBlue, "/bluecollar"},
		{RoleWhite, "/whitecollar"},
		{RoleCompany, "/dashboard"},
		{RoleNone, "/home"},
		{Role("garbage"), "/home"},
	}
	for _, tc := range cases {
		if got := LandingPath(tc.role); got != tc.want {
			t.Errorf("LandingPath(%s) = %s, want %s", tc.role, got, tc.want)
		}
	}
}

func TestSessionRole_NilSafe(t *testing.T) {
	var sess *Session
	if got := sess.Role(); got != RoleNone {
		t.Fatalf("nil session role = %s, want none", got)
	}

	sess = &Session{Metadata: map[string]string{MetadataTypeKey: "company"}}
	if got := sess.Role(); got != RoleCompany {
		t.Fatalf("session role = %s, want company", got)
	}
}

func TestJobseekerRole(t *testing.T) {
	if !RoleBlue.JobseekerRole() || !RoleWhite.JobseekerRole() {
		t.Fatalf("blue and white are jobseeker roles")
	}
	if RoleCompany.JobseekerRole() || RoleNone.JobseekerRole() {
		t.Fatalf("company and none are not jobseeker roles")
	}
}
