package roster

import "time"

// Query は検索語と並び替え状態です。状態は呼び出し側が所有します。
type Query struct {
	Search    string
	SortKey   SortKey
	Direction Direction
}

// SortState は q の並び替え状態を返します。
func (q Query) SortState() SortState {
	return SortState{Key: q.SortKey, Direction: q.Direction}
}

// Project はツリーを展開し、絞り込み、並び替えたうえで today 基準の派生値を付与します。
// 入力は変更しません。
func Project(tree []EmployeeRecord, q Query, today time.Time) ([]AnnotatedRecord, error) {
	flat := Flatten(tree)
	filtered := Filter(flat, q.Search)
	sorted, err := Sort(filtered, q.SortKey, q.Direction)
	if err != nil {
		return nil, err
	}
	return Annotate(sorted, today), nil
}
