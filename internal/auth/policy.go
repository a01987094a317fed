// Package auth verifies identity provider sessions and decides access from a role policy.
package auth

import (
	"fmt"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Role is a user's role, stored in identity provider metadata.
type Role string

// Roles.
const (
	RoleAdmin         Role = "admin"
	RoleTeacher       Role = "teacher"
	RoleStudent       Role = "student"
	RoleParent        Role = "parent"
	RoleStateDirector Role = "state_director"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleStateDirector}

// ValidRole reports whether role is one of Roles.
func ValidRole(role Role) bool {
	return slices.Contains(Roles, role)
}

// RoleNames returns the valid roles joined for error messages.
func RoleNames() string {
	names := make([]string, len(Roles))
	for i, r := range Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// Permission names an action guarded by the policy.
type Permission string

// Permissions.
const (
	PermEventsCreate    Permission = "events:create"
	PermEventsEdit      Permission = "events:edit"
	PermEventsDelete    Permission = "events:delete"
	PermEventsView      Permission = "events:view"
	PermTeamsCreate     Permission = "teams:create"
	PermTeamsEdit       Permission = "teams:edit"
	PermTeamsDelete     Permission = "teams:delete"
	PermTeamsView       Permission = "teams:view"
	PermSchoolsActivate Permission = "schools:activate"
	PermSchoolsRequest  Permission = "schools:request"
	PermSchoolsView     Permission = "schools:view"
	PermUsersManage     Permission = "users:manage"
	PermUsersViewAll    Permission = "users:view_all"
	PermUsersViewSchool Permission = "users:view_school"
	PermReportsAll      Permission = "reports:all"
	PermReportsSchool   Permission = "reports:school"
	PermReportsOwn      Permission = "reports:own"
	PermReportsState    Permission = "reports:state"
	PermAuditView       Permission = "audit:view"
)

var everyone = []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleStateDirector}

var defaultGrants = map[Permission][]Role{
	PermEventsCreate:    {RoleAdmin},
	PermEventsEdit:      {RoleAdmin},
	PermEventsDelete:    {RoleAdmin},
	PermEventsView:      everyone,
	PermTeamsCreate:     {RoleAdmin, RoleTeacher},
	PermTeamsEdit:       {RoleAdmin, RoleTeacher},
	PermTeamsDelete:     {RoleAdmin},
	PermTeamsView:       everyone,
	PermSchoolsActivate: {RoleAdmin},
	PermSchoolsRequest:  {RoleTeacher},
	PermSchoolsView:     {RoleAdmin, RoleTeacher, RoleStateDirector},
	PermUsersManage:     {RoleAdmin},
	PermUsersViewAll:    {RoleAdmin},
	PermUsersViewSchool: {RoleAdmin, RoleTeacher},
	PermReportsAll:      {RoleAdmin},
	PermReportsSchool:   {RoleAdmin, RoleTeacher},
	PermReportsOwn:      {RoleAdmin, RoleTeacher, RoleStudent, RoleParent},
	PermReportsState:    {RoleAdmin, RoleStateDirector},
	PermAuditView:       {RoleAdmin},
}

// Policy maps permissions to the roles that hold them.
type Policy struct {
	grants map[Permission][]Role
}

// DefaultPolicy returns the built-in policy.
func DefaultPolicy() *Policy {
	grants := make(map[Permission][]Role, len(defaultGrants))
	for perm, roles := range defaultGrants {
		grants[perm] = slices.Clone(roles)
	}
	return &Policy{grants: grants}
}

type policyFile struct {
	Permissions map[string][]string `koanf:"permissions"`
}

// LoadPolicy returns the default policy with the permissions listed in the YAML
// file at path replacing their defaults. An empty path returns the defaults.
//
//	permissions:
//	  "teams:delete": [admin, teacher]
func LoadPolicy(path string) (*Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	k := koanf.New("/")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}
	var pf policyFile
	if err := k.Unmarshal("", &pf); err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", path, err)
	}

	for perm, names := range pf.Permissions {
		roles := make([]Role, 0, len(names))
		for _, name := range names {
			role := Role(strings.TrimSpace(name))
			if !ValidRole(role) {
				return nil, fmt.Errorf("policy %s: permission %q grants unknown role %q", path, perm, name)
			}
			roles = append(roles, role)
		}
		policy.grants[Permission(perm)] = roles
	}
	return policy, nil
}

// HasPermission reports whether role holds perm. Unknown permissions are denied.
func (p *Policy) HasPermission(role Role, perm Permission) bool {
	if role == "" {
		return false
	}
	return slices.Contains(p.grants[perm], role)
}

// HasRole reports whether role is one of allowed.
func HasRole(role Role, allowed ...Role) bool {
	if role == "" {
		return false
	}
	return slices.Contains(allowed, role)
}
