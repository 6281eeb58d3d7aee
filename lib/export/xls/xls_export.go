package xlsexport

import (
	"bytes"
	"fmt"

	applicationapimodels "attachment-portal-backend/models/api/application"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicationList(list []applicationapimodels.ApplicationView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	dateLayout = "02.01.2006"
	sheetName  = "Applications"
)

var applicationColumns = []column{
	{Title: "Applicant", Width: 25},
	{Title: "Contacts", Width: 28},
	{Title: "Institution", Width: 30},
	{Title: "Course", Width: 25},
	{Title: "Role", Width: 12},
	{Title: "Department", Width: 35},
	{Title: "Subdepartment", Width: 35},
	{Title: "Start date", Width: 12},
	{Title: "End date", Width: 12},
	{Title: "Status", Width: 20},
	{Title: "HR comments", Width: 40},
	{Title: "HOD comments", Width: 40},
	{Title: "Submitted", Width: 12},
}

func (i impl) ExportApplicationList(list []applicationapimodels.ApplicationView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheetName, applicationColumns); err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		if err := writeApplicationData(f, sheetName, list); err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []applicationapimodels.ApplicationView) error {
	if err := applyDataCellStyle(f, sheet, len(applicationColumns), 2, len(list)+1); err != nil {
		return err
	}
	for idx, item := range list {
		values := []interface{}{
			"", "", "", "", item.ApplicantRole.ToHuman(),
			item.PreferredDepartmentName, item.PreferredSubdepartmentName,
			item.StartDate.Format(dateLayout), item.EndDate.Format(dateLayout),
			item.StatusName, item.HRComments, item.HODComments,
			item.CreatedAt.Format(dateLayout),
		}
		if item.Applicant != nil {
			values[0] = fmt.Sprintf("%v %v", item.Applicant.FirstName, item.Applicant.LastName)
			values[1] = fmt.Sprintf("%v\n%v", item.Applicant.PhoneNumber, item.Applicant.Email)
			values[2] = item.Applicant.Institution
			values[3] = item.Applicant.Course
		}
		if err := writeRow(f, sheet, idx+2, values); err != nil {
			return err
		}
	}
	return nil
}
