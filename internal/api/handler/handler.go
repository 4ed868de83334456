package handler

import "github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Offering   *OfferingHandler
	Session    *SessionHandler
	Attendance *AttendanceHandler
	PayPeriod  *PayPeriodHandler
	Payroll    *PayrollHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Offering:   NewOfferingHandler(svc.Offering),
		Session:    NewSessionHandler(svc.Session),
		Attendance: NewAttendanceHandler(svc.Attendance),
		PayPeriod:  NewPayPeriodHandler(svc.PayPeriod),
		Payroll:    NewPayrollHandler(svc.Payroll),
		Export:     NewExportHandler(svc.Export),
	}
}
