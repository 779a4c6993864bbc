package roster

import "time"

// EmployeeRecord はデータアクセス層から受け取る社員レコードです。
// Subordinates が nil と空スライスの場合は同じ意味として扱います。
type EmployeeRecord struct {
	ID           int64
	EmployeeID   int64
	Name         string
	Email        string
	HireDate     time.Time
	ManagerName  string
	ManagerEmail string
	Subordinates []EmployeeRecord
}

// AnnotatedRecord は勤続年数と次の入社記念日までの日数を付与したレコードです。
// 派生値は読み取りのたびに再計算され、永続化されません。
type AnnotatedRecord struct {
	EmployeeRecord
	YearsOfService       int
	DaysUntilAnniversary int
}

// Annotate は today を基準に派生値を付与します。
func Annotate(records []EmployeeRecord, today time.Time) []AnnotatedRecord {
	out := make([]AnnotatedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, AnnotatedRecord{
			EmployeeRecord:       rec,
			YearsOfService:       YearsOfService(rec.HireDate, today),
			DaysUntilAnniversary: DaysUntilAnniversary(rec.HireDate, today),
		})
	}
	return out
}
