package roster

import (
	"strconv"
	"strings"
)

// Filter は検索語を大文字小文字を区別せず部分一致で絞り込みます。
// 対象は氏名、メールアドレス、社員番号 (10 進表記)、上長名です。空の検索語は全件を返します。
func Filter(records []EmployeeRecord, term string) []EmployeeRecord {
	out := make([]EmployeeRecord, 0, len(records))
	if term == "" {
		return append(out, records...)
	}

	needle := strings.ToLower(term)
	for _, rec := range records {
		if matches(rec, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec EmployeeRecord, needle string) bool {
	return containsFold(rec.Name, needle) ||
		containsFold(rec.Email, needle) ||
		strings.Contains(strconv.FormatInt(rec.EmployeeID, 10), needle) ||
		containsFold(rec.ManagerName, needle)
}

func containsFold(field, needle string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), needle)
}
