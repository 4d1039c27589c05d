package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-hrops/internal/attendance"
	"go-hrops/internal/employee"
	"go-hrops/internal/leavebalance"
	reporterrors "go-hrops/internal/report/errors"
	"go-hrops/internal/shared/dateutil"
)

const departmentReportKeyPrefix = "reports:department:"

func departmentReportKey(companyID, departmentID string, month time.Month, year int) string {
	return fmt.Sprintf("%s%s:%s:%04d-%02d", departmentReportKeyPrefix, companyID, departmentID, year, int(month))
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	// DepartmentReport rolls up attendance and leave usage for every active
	// member of a department. A member whose sub-queries fail degrades to a
	// zero row instead of failing the report.
	DepartmentReport(ctx context.Context, companyID, departmentID string, month time.Month, year int) (DepartmentReport, error)
	// ExportCSV streams one row per member per recorded day in the month.
	ExportCSV(ctx context.Context, w io.Writer, companyID, departmentID string, month time.Month, year int) error
}

type service struct {
	employees  employee.Repository
	attendance attendance.Service
	balances   leavebalance.Service
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	employees employee.Repository,
	attendanceSvc attendance.Service,
	balances leavebalance.Service,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		employees:  employees,
		attendance: attendanceSvc,
		balances:   balances,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) DepartmentReport(ctx context.Context, companyID, departmentID string, month time.Month, year int) (DepartmentReport, error) {
	if month < time.January || month > time.December {
		return DepartmentReport{}, reporterrors.ErrInvalidMonth
	}
	if year < 2000 || year > 2100 {
		return DepartmentReport{}, reporterrors.ErrInvalidYear
	}

	cacheKey := departmentReportKey(companyID, departmentID, month, year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp DepartmentReport
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildDepartmentReport(ctx, companyID, departmentID, month, year)
		if err != nil {
			return nil, err
		}

		// Reports tolerate staleness, so a short TTL is enough.
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return DepartmentReport{}, err
	}

	return v.(DepartmentReport), nil
}

func (s *service) buildDepartmentReport(ctx context.Context, companyID, departmentID string, month time.Month, year int) (DepartmentReport, error) {
	deptName, err := s.employees.GetDepartmentName(ctx, companyID, departmentID)
	if err != nil {
		s.logger.Error("department lookup failed",
			zap.String("department_id", departmentID),
			zap.Error(err),
		)
		return DepartmentReport{}, err
	}
	if deptName == "" {
		return DepartmentReport{}, reporterrors.ErrDepartmentNotFound
	}

	members, err := s.employees.FindAllByDepartment(ctx, companyID, departmentID)
	if err != nil {
		s.logger.Error("department member lookup failed",
			zap.String("department_id", departmentID),
			zap.Error(err),
		)
		return DepartmentReport{}, err
	}

	report := DepartmentReport{
		DepartmentID:   departmentID,
		DepartmentName: deptName,
		Month:          int(month),
		Year:           year,
		MemberCount:    len(members),
		Members:        make([]MemberReport, 0, len(members)),
	}

	pctSum := decimal.Zero
	hoursSum := decimal.Zero
	counted := 0

	for _, m := range members {
		row := s.memberRow(ctx, companyID, m, month, year)
		report.Members = append(report.Members, row)
		report.TotalLeaveDaysTaken += row.LeaveDays

		if !row.Degraded {
			pctSum = pctSum.Add(decimal.NewFromFloat(row.AttendancePercentage))
			hoursSum = hoursSum.Add(decimal.NewFromFloat(row.TotalWorkHours))
			counted++
		}
	}

	if counted > 0 {
		report.AveragePercentage = pctSum.Div(decimal.NewFromInt(int64(counted))).Round(2).InexactFloat64()
	}
	report.TotalWorkHours = hoursSum.Round(2).InexactFloat64()

	return report, nil
}

// memberRow never returns an error. Failures degrade to a zero row so a
// single broken member cannot take the whole department report down.
func (s *service) memberRow(ctx context.Context, companyID string, m employee.Employee, month time.Month, year int) MemberReport {
	employeeID := m.ID.String()
	row := MemberReport{
		EmployeeID: employeeID,
		FullName:   m.FullName,
	}

	summary, err := s.attendance.Summarize(ctx, companyID, employeeID, month, year)
	if err != nil {
		s.logger.Warn("member summary failed, degrading to zero row",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		row.Degraded = true
		return row
	}

	row.WorkingDays = summary.WorkingDays
	row.PresentDays = summary.PresentDays
	row.LeaveDays = summary.LeaveDays
	row.AbsentDays = summary.AbsentDays
	row.AttendancePercentage = summary.AttendancePercentage
	row.TotalWorkHours = summary.TotalWorkHours

	balances, err := s.balances.GetByEmployeeAndYear(ctx, companyID, employeeID, year)
	if err != nil {
		s.logger.Warn("member balance lookup failed, leaving allocation empty",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return row
	}

	for _, b := range balances {
		row.LeaveAllocated += b.Allocated
		row.LeaveUsed += b.Used
	}

	return row
}

var csvHeader = []string{"employee_id", "name", "date", "hours", "project", "department"}

func (s *service) ExportCSV(ctx context.Context, w io.Writer, companyID, departmentID string, month time.Month, year int) error {
	if month < time.January || month > time.December {
		return reporterrors.ErrInvalidMonth
	}

	deptName, err := s.employees.GetDepartmentName(ctx, companyID, departmentID)
	if err != nil {
		return err
	}
	if deptName == "" {
		return reporterrors.ErrDepartmentNotFound
	}

	members, err := s.employees.FindAllByDepartment(ctx, companyID, departmentID)
	if err != nil {
		return err
	}

	first, last := dateutil.MonthBounds(month, year)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, m := range members {
		employeeID := m.ID.String()
		records, err := s.attendance.Query(ctx, companyID, employeeID, first, last)
		if err != nil {
			s.logger.Warn("member export query failed, skipping member",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			continue
		}

		for _, rec := range records {
			hours := ""
			if rec.WorkHours != nil {
				hours = decimal.NewFromFloat(*rec.WorkHours).Round(2).String()
			}

			// No project dimension in this engine, the column stays blank.
			err := cw.Write([]string{
				employeeID,
				m.FullName,
				rec.AttendanceDate,
				hours,
				"",
				deptName,
			})
			if err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
