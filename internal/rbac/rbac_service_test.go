package rbac

import (
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	employeeRoles   []EmployeeRoleRow
	rolePermissions []RolePermissionRow
}

func (f *fakeRepo) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	return f.employeeRoles, nil
}

func (f *fakeRepo) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	return f.rolePermissions, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &fakeRepo{
		employeeRoles: []EmployeeRoleRow{
			{EmployeeID: "emp-hr", RoleID: "role-hr"},
			{EmployeeID: "emp-staff", RoleID: "role-staff"},
		},
		rolePermissions: []RolePermissionRow{
			{RoleID: "role-hr", Resource: "leave", Action: "approve"},
			{RoleID: "role-hr", Resource: "report", Action: "read"},
			{RoleID: "role-staff", Resource: "leave", Action: "create"},
		},
	}
	enforcer := newTestEnforcer(t)
	service := NewService(repo, enforcer)

	err := service.LoadCompanyPolicy("company-1")
	assert.NoError(t, err)

	allowed, err := service.Enforce(EnforceRequest{
		EmployeeID: "emp-hr",
		CompanyID:  "company-1",
		Resource:   "leave",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	// Staff can file leave but never approve it.
	allowed, err = service.Enforce(EnforceRequest{
		EmployeeID: "emp-staff",
		CompanyID:  "company-1",
		Resource:   "leave",
		Action:     "create",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := service.Enforce(EnforceRequest{
		EmployeeID: "emp-staff",
		CompanyID:  "company-1",
		Resource:   "leave",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.False(t, denied)

	denied, err = service.Enforce(EnforceRequest{
		EmployeeID: "emp-staff",
		CompanyID:  "company-1",
		Resource:   "report",
		Action:     "read",
	})
	assert.NoError(t, err)
	assert.False(t, denied)
}
