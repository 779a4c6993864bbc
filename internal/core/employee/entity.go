package employee

import (
	"time"

	"github.com/ogurasousui/service-award/internal/core/roster"
)

// Employee は社員エンティティです。
type Employee struct {
	ID           int64
	EmployeeID   int64
	Name         string
	Email        string
	HireDate     time.Time
	ManagerName  string
	ManagerEmail string
}

// Record は投影処理で扱うレコードに変換します。
func (e *Employee) Record() roster.EmployeeRecord {
	return roster.EmployeeRecord{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		Name:         e.Name,
		Email:        e.Email,
		HireDate:     e.HireDate,
		ManagerName:  e.ManagerName,
		ManagerEmail: e.ManagerEmail,
	}
}

func toRecords(employees []*Employee) []roster.EmployeeRecord {
	records := make([]roster.EmployeeRecord, 0, len(employees))
	for _, e := range employees {
		if e == nil {
			continue
		}
		records = append(records, e.Record())
	}
	return records
}
