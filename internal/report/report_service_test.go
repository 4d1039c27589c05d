package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"go-hrops/internal/attendance"
	"go-hrops/internal/employee"
	"go-hrops/internal/leavebalance"
	"go-hrops/internal/report"
	reporterrors "go-hrops/internal/report/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeRepository struct {
	findAllByDepartmentFn func(ctx context.Context, companyID, departmentID string) ([]employee.Employee, error)
	getDepartmentNameFn   func(ctx context.Context, companyID, departmentID string) (string, error)
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindAllByDepartment(ctx context.Context, companyID, departmentID string) ([]employee.Employee, error) {
	if f.findAllByDepartmentFn != nil {
		return f.findAllByDepartmentFn(ctx, companyID, departmentID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) GetDepartmentName(ctx context.Context, companyID, departmentID string) (string, error) {
	if f.getDepartmentNameFn != nil {
		return f.getDepartmentNameFn(ctx, companyID, departmentID)
	}
	return "Engineering", nil
}

type fakeAttendanceService struct {
	queryFn     func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.AttendanceResponse, error)
	summarizeFn func(ctx context.Context, companyID, employeeID string, month time.Month, year int) (attendance.SummaryResponse, error)
}

func (f *fakeAttendanceService) MarkPresent(ctx context.Context, companyID, employeeID string, req attendance.MarkPresentRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, companyID, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) Correct(ctx context.Context, companyID, recordID string, req attendance.CorrectRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) Query(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.AttendanceResponse, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, companyID, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeAttendanceService) Summarize(ctx context.Context, companyID, employeeID string, month time.Month, year int) (attendance.SummaryResponse, error) {
	if f.summarizeFn != nil {
		return f.summarizeFn(ctx, companyID, employeeID, month, year)
	}
	return attendance.SummaryResponse{}, nil
}

func (f *fakeAttendanceService) EnsureOnLeave(ctx context.Context, companyID, employeeID string, days []time.Time) ([]time.Time, error) {
	return days, nil
}

func (f *fakeAttendanceService) RemoveBackfill(ctx context.Context, companyID, employeeID string, days []time.Time) error {
	return nil
}

type fakeBalanceService struct {
	getByEmployeeAndYearFn func(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.BalanceResponse, error)
}

func (f *fakeBalanceService) EnsureSeeded(ctx context.Context, companyID, employeeID string, year int) error {
	return nil
}

func (f *fakeBalanceService) GetByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.BalanceResponse, error) {
	if f.getByEmployeeAndYearFn != nil {
		return f.getByEmployeeAndYearFn(ctx, companyID, employeeID, year)
	}
	return nil, nil
}

func (f *fakeBalanceService) Debit(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) error {
	return nil
}

func (f *fakeBalanceService) Credit(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) error {
	return nil
}

func (f *fakeBalanceService) Adjust(ctx context.Context, companyID string, req leavebalance.AdjustBalanceRequest) (leavebalance.BalanceResponse, error) {
	return leavebalance.BalanceResponse{}, nil
}

func member(name string) employee.Employee {
	return employee.Employee{ID: uuid.New(), FullName: name, IsActive: true}
}

func TestReportService_DepartmentReport(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	departmentID := uuid.New().String()

	t.Run("success averages only healthy rows", func(t *testing.T) {
		alice := member("Alice Tan")
		bob := member("Bob Lim")
		carol := member("Carol Ong")

		employees := &fakeEmployeeRepository{
			findAllByDepartmentFn: func(ctx context.Context, cid, did string) ([]employee.Employee, error) {
				return []employee.Employee{alice, bob, carol}, nil
			},
		}
		attendanceSvc := &fakeAttendanceService{
			summarizeFn: func(ctx context.Context, cid, eid string, month time.Month, year int) (attendance.SummaryResponse, error) {
				switch eid {
				case alice.ID.String():
					return attendance.SummaryResponse{
						WorkingDays: 20, PresentDays: 18, LeaveDays: 2, AbsentDays: 0,
						AttendancePercentage: 100.0, TotalWorkHours: 144.0,
					}, nil
				case bob.ID.String():
					return attendance.SummaryResponse{
						WorkingDays: 20, PresentDays: 16, LeaveDays: 0, AbsentDays: 4,
						AttendancePercentage: 80.0, TotalWorkHours: 128.0,
					}, nil
				default:
					// Carol's summary store is broken this month.
					return attendance.SummaryResponse{}, assert.AnError
				}
			},
		}
		balances := &fakeBalanceService{
			getByEmployeeAndYearFn: func(ctx context.Context, cid, eid string, year int) ([]leavebalance.BalanceResponse, error) {
				return []leavebalance.BalanceResponse{{Allocated: 12, Used: 2}}, nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(fmt.Sprintf("reports:department:%s:%s:2026-03", companyID, departmentID)).RedisNil()

		svc := report.NewService(employees, attendanceSvc, balances, rdb)

		resp, err := svc.DepartmentReport(ctx, companyID, departmentID, time.March, 2026)

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.DepartmentName)
		assert.Equal(t, 3, resp.MemberCount)
		assert.Len(t, resp.Members, 3)

		// Carol degrades to a zero row and stays out of the average.
		assert.True(t, resp.Members[2].Degraded)
		assert.Equal(t, 0, resp.Members[2].WorkingDays)
		assert.Equal(t, 90.0, resp.AveragePercentage)
		assert.Equal(t, 272.0, resp.TotalWorkHours)
		assert.Equal(t, 2, resp.TotalLeaveDaysTaken)
		assert.Equal(t, 12, resp.Members[0].LeaveAllocated)
	})

	t.Run("cache hit skips the rollup entirely", func(t *testing.T) {
		employees := &fakeEmployeeRepository{
			getDepartmentNameFn: func(ctx context.Context, cid, did string) (string, error) {
				t.Fatal("a cache hit must not reach the store")
				return "", nil
			},
		}

		cached := report.DepartmentReport{
			DepartmentID:   departmentID,
			DepartmentName: "Engineering",
			Month:          3,
			Year:           2026,
			MemberCount:    2,
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(fmt.Sprintf("reports:department:%s:%s:2026-03", companyID, departmentID)).SetVal(string(payload))

		svc := report.NewService(employees, &fakeAttendanceService{}, &fakeBalanceService{}, rdb)

		resp, err := svc.DepartmentReport(ctx, companyID, departmentID, time.March, 2026)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative unknown department", func(t *testing.T) {
		employees := &fakeEmployeeRepository{
			getDepartmentNameFn: func(ctx context.Context, cid, did string) (string, error) {
				return "", nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(fmt.Sprintf("reports:department:%s:%s:2026-03", companyID, departmentID)).RedisNil()

		svc := report.NewService(employees, &fakeAttendanceService{}, &fakeBalanceService{}, rdb)

		_, err := svc.DepartmentReport(ctx, companyID, departmentID, time.March, 2026)

		assert.ErrorIs(t, err, reporterrors.ErrDepartmentNotFound)
	})

	t.Run("negative invalid month", func(t *testing.T) {
		svc := report.NewService(&fakeEmployeeRepository{}, &fakeAttendanceService{}, &fakeBalanceService{}, nil)

		_, err := svc.DepartmentReport(ctx, companyID, departmentID, time.Month(13), 2026)

		assert.ErrorIs(t, err, reporterrors.ErrInvalidMonth)
	})
}

func TestReportService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	departmentID := uuid.New().String()

	t.Run("success writes one row per recorded day", func(t *testing.T) {
		alice := member("Alice Tan")
		broken := member("Broken Row")

		employees := &fakeEmployeeRepository{
			findAllByDepartmentFn: func(ctx context.Context, cid, did string) ([]employee.Employee, error) {
				return []employee.Employee{alice, broken}, nil
			},
		}
		hours := 8.333333
		attendanceSvc := &fakeAttendanceService{
			queryFn: func(ctx context.Context, cid, eid string, from, to time.Time) ([]attendance.AttendanceResponse, error) {
				if eid == broken.ID.String() {
					return nil, assert.AnError
				}
				assert.Equal(t, "2026-03-01", from.Format("2006-01-02"))
				assert.Equal(t, "2026-03-31", to.Format("2006-01-02"))
				return []attendance.AttendanceResponse{
					{EmployeeID: eid, AttendanceDate: "2026-03-02", Status: "PRESENT", WorkHours: &hours},
					{EmployeeID: eid, AttendanceDate: "2026-03-03", Status: "PRESENT"},
				}, nil
			},
		}

		svc := report.NewService(employees, attendanceSvc, &fakeBalanceService{}, nil)

		var buf bytes.Buffer
		err := svc.ExportCSV(ctx, &buf, companyID, departmentID, time.March, 2026)

		assert.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		// Header plus Alice's two days; the broken member is skipped.
		assert.Len(t, lines, 3)
		assert.Equal(t, "employee_id,name,date,hours,project,department", lines[0])
		assert.Equal(t, alice.ID.String()+",Alice Tan,2026-03-02,8.33,,Engineering", lines[1])
		assert.Equal(t, alice.ID.String()+",Alice Tan,2026-03-03,,,Engineering", lines[2])
	})

	t.Run("negative unknown department", func(t *testing.T) {
		employees := &fakeEmployeeRepository{
			getDepartmentNameFn: func(ctx context.Context, cid, did string) (string, error) {
				return "", nil
			},
		}
		svc := report.NewService(employees, &fakeAttendanceService{}, &fakeBalanceService{}, nil)

		var buf bytes.Buffer
		err := svc.ExportCSV(ctx, &buf, companyID, departmentID, time.March, 2026)

		assert.ErrorIs(t, err, reporterrors.ErrDepartmentNotFound)
		assert.Empty(t, buf.String())
	})
}
