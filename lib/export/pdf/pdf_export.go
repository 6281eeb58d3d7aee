package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	applicationapimodels "attachment-portal-backend/models/api/application"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const dateLayout = "02.01.2006"

type column struct {
	title string
	width float64
	value func(item applicationapimodels.ApplicationView) string
}

var applicationColumns = []column{
	{title: "Applicant", width: 45, value: func(item applicationapimodels.ApplicationView) string {
		if item.Applicant == nil {
			return ""
		}
		return item.Applicant.FirstName + " " + item.Applicant.LastName
	}},
	{title: "Institution", width: 50, value: func(item applicationapimodels.ApplicationView) string {
		if item.Applicant == nil {
			return ""
		}
		return item.Applicant.Institution
	}},
	{title: "Role", width: 20, value: func(item applicationapimodels.ApplicationView) string {
		return item.ApplicantRole.ToHuman()
	}},
	{title: "Department", width: 30, value: func(item applicationapimodels.ApplicationView) string {
		return item.PreferredDepartment
	}},
	{title: "Subdepartment", width: 30, value: func(item applicationapimodels.ApplicationView) string {
		return item.PreferredSubdepartment
	}},
	{title: "Period", width: 45, value: func(item applicationapimodels.ApplicationView) string {
		return item.StartDate.Format(dateLayout) + " - " + item.EndDate.Format(dateLayout)
	}},
	{title: "Status", width: 40, value: func(item applicationapimodels.ApplicationView) string {
		return item.StatusName
	}},
}

// GenerateApplicationList renders the list as a landscape A4 table with the
// core Helvetica font.
func GenerateApplicationList(title string, list []applicationapimodels.ApplicationView, generatedAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateApplicationList panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s, %d applications", generatedAt.Format("02.01.2006 15:04"), len(list)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeTableHeader(pdf)
	pdf.SetFont("Helvetica", "", 9)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()
	for idx, item := range list {
		if pdf.GetY()+7 > pageHeight-bottomMargin-10 {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		fill := idx%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for _, col := range applicationColumns {
			pdf.CellFormat(col.width, 7, tr(fitText(pdf, col.value(item), col.width)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 230, 241)
	for _, col := range applicationColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// fitText cuts the value so it fits the cell width.
func fitText(pdf *fpdf.Fpdf, value string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(value) <= limit {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
