package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/config"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportPayroll 导出教师课时费明细为 Excel
	ExportPayroll(ctx context.Context, organizationID string, req *dto.ExportPayrollRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	payroll  PayrollService
	currency string
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(payroll PayrollService, cfg *config.PayrollConfig, logger *zap.Logger) ExportService {
	return &exportService{payroll: payroll, currency: cfg.Currency, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportPayroll 导出课时费明细
// ═══════════════════════════════════════════════════════════
//
// 输出格式（单 Sheet "Payroll"）：
//   - 第 1 行：标题（教师 ID 与日期区间）
//   - 第 2 行：表头 开课 | 课次 | 教师缺勤 | 单价 | 小计
//   - 数据行按开课名称排序
//   - 末行：合计

func (s *exportService) ExportPayroll(ctx context.Context, organizationID string, req *dto.ExportPayrollRequest) (*bytes.Buffer, string, error) {
	pay, err := s.payroll.CalculateTeacherPay(ctx, organizationID, req.TeacherID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Payroll"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "E", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyFmt := "#,##0.00"
	moneyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s  %s ~ %s (%s)", pay.TeacherID, pay.StartDate, pay.EndDate, s.currency))
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"Offering", "Sessions", "Teacher Absent", "Rate", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "E2", headerStyle)

	// 数据行
	row := 3
	for _, line := range pay.Breakdown {
		f.SetCellValue(sheetName, cell("A", row), line.OfferingName)
		f.SetCellValue(sheetName, cell("B", row), line.BillableSessionCount)
		f.SetCellValue(sheetName, cell("C", row), line.TeacherAbsentCount)
		f.SetCellValue(sheetName, cell("D", row), line.Rate.InexactFloat64())
		f.SetCellValue(sheetName, cell("E", row), line.Total.InexactFloat64())
		row++
	}

	// 合计
	f.SetCellValue(sheetName, cell("A", row), "Total")
	f.SetCellValue(sheetName, cell("E", row), pay.TotalPay.InexactFloat64())
	f.SetCellStyle(sheetName, "D3", cell("E", row), moneyStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("payroll_%s_%s_%s.xlsx", pay.TeacherID, pay.StartDate, pay.EndDate)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
