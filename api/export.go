package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"factcheck/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportExcel 导出核查历史为 Excel
// @Summary 导出核查历史
// @Description 导出与历史列表相同范围的核查记录为 xlsx 文件
// @Tags 核查
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel 文件"
// @Failure 401 {object} Response "未授权"
// @Router /api/analysis/export/excel [get]
func (h *AnalysisHandler) ExportExcel(c *gin.Context) {
	list, err := h.svc.History(c.Request.Context(), h.filter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := buildWorkbook(list)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("核查记录_%s.xlsx", time.Now().Format("20060102150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: "生成 Excel 失败"})
		return
	}
}

const exportSheet = "核查记录"

func buildWorkbook(list []models.Analysis) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    border,
	})

	f.SetColWidth(exportSheet, "A", "A", 38)
	f.SetColWidth(exportSheet, "B", "B", 40)
	f.SetColWidth(exportSheet, "C", "C", 12)
	f.SetColWidth(exportSheet, "D", "D", 8)
	f.SetColWidth(exportSheet, "E", "E", 60)
	f.SetColWidth(exportSheet, "F", "F", 50)
	f.SetColWidth(exportSheet, "G", "G", 20)

	headers := []string{"ID", "声明", "结论", "可信度", "说明", "来源", "核查时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(exportSheet, cell, header)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for i, rec := range list {
		row := i + 2
		uris := make([]string, 0, len(rec.Sources))
		for _, s := range rec.Sources {
			uris = append(uris, s.URI)
		}
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), rec.ID)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), rec.FullClaim)
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), string(rec.Verdict))
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), rec.Score)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), rec.Explanation)
		f.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), strings.Join(uris, "\n"))
		f.SetCellValue(exportSheet, fmt.Sprintf("G%d", row), rec.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), dataStyle)
	}

	return f, nil
}
