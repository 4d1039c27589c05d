package rbac

type EnforceRequest struct {
	EmployeeID string
	CompanyID  string
	Resource   string
	Action     string
}
