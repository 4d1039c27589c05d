package leave_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrops/internal/leave"
	leaveerrors "go-hrops/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	submitFn  func(ctx context.Context, companyID, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn  func(ctx context.Context, companyID, actorID string, canReadAll bool) ([]leave.LeaveResponse, error)
	getByIDFn func(ctx context.Context, companyID, id string) (leave.LeaveResponse, error)
	approveFn func(ctx context.Context, companyID, approverID, id string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, companyID, approverID, id, rejectionReason string) (leave.LeaveResponse, error)
	cancelFn  func(ctx context.Context, companyID, employeeID, id string) error
}

func (f *fakeService) Submit(ctx context.Context, companyID, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, companyID, actorID, canReadAll)
}
func (f *fakeService) GetByID(ctx context.Context, companyID, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeService) Approve(ctx context.Context, companyID, approverID, id string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, companyID, approverID, id)
}
func (f *fakeService) Reject(ctx context.Context, companyID, approverID, id, rejectionReason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, companyID, approverID, id, rejectionReason)
}
func (f *fakeService) Cancel(ctx context.Context, companyID, employeeID, id string) error {
	return f.cancelFn(ctx, companyID, employeeID, id)
}

func TestHandler_SubmitAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	svc := &fakeService{
		submitFn: func(ctx context.Context, cid, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, leaveTypeID, req.LeaveTypeID)
			return leave.LeaveResponse{ID: uuid.New().String(), TotalDays: 5, Status: leave.StatusPending}, nil
		},
		getAllFn: func(ctx context.Context, cid, actorID string, canReadAll bool) ([]leave.LeaveResponse, error) {
			assert.False(t, canReadAll)
			assert.Equal(t, employeeID, actorID)
			return []leave.LeaveResponse{{ID: uuid.New().String()}}, nil
		},
	}

	h := leave.NewHandler(svc)

	body := fmt.Sprintf(`{"leave_type_id":%q,"start_date":"2026-03-02","end_date":"2026-03-06","reason":"family trip"}`, leaveTypeID)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"total_days":5`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("company_id", companyID)
	c2.Set("employee_id", employeeID)
	c2.Set("role", "STAFF")
	c2.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestHandler_Submit_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		submitFn: func(ctx context.Context, cid, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			t.Fatal("service must not be called on a binding failure")
			return leave.LeaveResponse{}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"leave_type_id":"not-a-uuid"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetAll_PrivilegedRoleSeesCompany(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()

	svc := &fakeService{
		getAllFn: func(ctx context.Context, cid, actorID string, canReadAll bool) ([]leave.LeaveResponse, error) {
			assert.True(t, canReadAll)
			return nil, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("employee_id", uuid.New().String())
	c.Set("role", "hr")
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ApproveAndReject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	approverID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("approve success", func(t *testing.T) {
		svc := &fakeService{
			approveFn: func(ctx context.Context, cid, aid, id string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/approve", nil)
		h.Approve(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusApproved)
	})

	t.Run("approve not pending maps to conflict", func(t *testing.T) {
		svc := &fakeService{
			approveFn: func(ctx context.Context, cid, aid, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotPending
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/approve", nil)
		h.Approve(c)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("reject requires a reason in the body", func(t *testing.T) {
		svc := &fakeService{
			rejectFn: func(ctx context.Context, cid, aid, id, reason string) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called without a reason")
				return leave.LeaveResponse{}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Reject(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reject success", func(t *testing.T) {
		svc := &fakeService{
			rejectFn: func(ctx context.Context, cid, aid, id, reason string) (leave.LeaveResponse, error) {
				assert.Equal(t, "coverage gap", reason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected, RejectionReason: &reason}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/reject", strings.NewReader(`{"rejection_reason":"coverage gap"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Reject(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "coverage gap")
	})
}

func TestHandler_Cancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			cancelFn: func(ctx context.Context, cid, eid, id string) error {
				assert.Equal(t, employeeID, eid)
				return nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", employeeID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodDelete, "/leaves/"+leaveID, nil)
		h.Cancel(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cancelled":true`)
	})

	t.Run("negative not the owner", func(t *testing.T) {
		svc := &fakeService{
			cancelFn: func(ctx context.Context, cid, eid, id string) error {
				return leaveerrors.ErrNotOwner
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", employeeID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodDelete, "/leaves/"+leaveID, nil)
		h.Cancel(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
