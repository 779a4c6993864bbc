package roster

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey は並び替えの対象列です。空文字列は並び替えなしを表します。
type SortKey string

const (
	SortNone          SortKey = ""
	SortByID          SortKey = "id"
	SortByEmployeeID  SortKey = "employee_id"
	SortByName        SortKey = "employee_name"
	SortByEmail       SortKey = "employee_email"
	SortByHireDate    SortKey = "hire_date"
	SortByManagerName SortKey = "manager_name"
)

// Direction は並び替えの方向です。
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey は文字列を SortKey に変換します。空文字列と "none" は並び替えなしです。
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if key == "none" {
		return SortNone, nil
	}
	if key == SortNone || comparatorFor(key) != nil {
		return key, nil
	}
	return SortNone, ErrInvalidSortKey
}

// ParseDirection は文字列を Direction に変換します。空文字列は昇順です。
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", ErrInvalidSortDirection
	}
}

// SortState は呼び出し側が保持する現在の並び替え状態です。
type SortState struct {
	Key       SortKey
	Direction Direction
}

// ToggleSort は列見出しのクリックと同じ規則で次の並び替え状態を返します。
// 同じ列が昇順なら降順に、それ以外は新しい列の昇順になります。
func ToggleSort(current SortState, key SortKey) SortState {
	if current.Key == key && current.Direction != Descending {
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}

// Sort は key と direction に従って安定ソートした新しいスライスを返します。
// 降順は昇順の比較結果を反転させるだけなので、同値の要素は方向に関係なく元の順序を保ちます。
func Sort(records []EmployeeRecord, key SortKey, direction Direction) ([]EmployeeRecord, error) {
	out := slices.Clone(records)
	if key == SortNone {
		return out, nil
	}

	compare := comparatorFor(key)
	if compare == nil {
		return nil, ErrInvalidSortKey
	}

	switch direction {
	case Ascending, "":
		slices.SortStableFunc(out, compare)
	case Descending:
		slices.SortStableFunc(out, func(a, b EmployeeRecord) int {
			return -compare(a, b)
		})
	default:
		return nil, ErrInvalidSortDirection
	}
	return out, nil
}

func comparatorFor(key SortKey) func(a, b EmployeeRecord) int {
	switch key {
	case SortByID:
		return func(a, b EmployeeRecord) int { return cmp.Compare(a.ID, b.ID) }
	case SortByEmployeeID:
		return func(a, b EmployeeRecord) int { return cmp.Compare(a.EmployeeID, b.EmployeeID) }
	case SortByName:
		return func(a, b EmployeeRecord) int { return strings.Compare(a.Name, b.Name) }
	case SortByEmail:
		return func(a, b EmployeeRecord) int { return strings.Compare(a.Email, b.Email) }
	case SortByManagerName:
		return func(a, b EmployeeRecord) int { return strings.Compare(a.ManagerName, b.ManagerName) }
	case SortByHireDate:
		return func(a, b EmployeeRecord) int { return a.HireDate.Compare(b.HireDate) }
	default:
		return nil
	}
}
