package roster

import "strings"

// Flatten は部下ツリーを前順 (親の直後にその部下) で 1 列に展開します。
// 出力レコードは Subordinates を持たないため、展開済みの入力に対しても冪等です。
func Flatten(tree []EmployeeRecord) []EmployeeRecord {
	out := make([]EmployeeRecord, 0, Count(tree))
	var walk func(nodes []EmployeeRecord)
	walk = func(nodes []EmployeeRecord) {
		for _, n := range nodes {
			rec := n
			rec.Subordinates = nil
			out = append(out, rec)
			if len(n.Subordinates) > 0 {
				walk(n.Subordinates)
			}
		}
	}
	walk(tree)
	return out
}

// Count はツリーに含まれるレコードの総数を返します。
func Count(tree []EmployeeRecord) int {
	total := 0
	for _, n := range tree {
		total += 1 + Count(n.Subordinates)
	}
	return total
}

// BuildTree は managerEmail の直属部下を根とする部下ツリーを組み立てます。
// 兄弟の順序は records の順序を保ち、同じメールアドレスは一度しか辿りません。
func BuildTree(records []EmployeeRecord, managerEmail string) []EmployeeRecord {
	children := make(map[string][]EmployeeRecord, len(records))
	for _, rec := range records {
		key := emailKey(rec.ManagerEmail)
		if key == "" {
			continue
		}
		flat := rec
		flat.Subordinates = nil
		children[key] = append(children[key], flat)
	}

	visited := make(map[string]struct{}, len(records)+1)
	var build func(manager string) []EmployeeRecord
	build = func(manager string) []EmployeeRecord {
		key := emailKey(manager)
		if _, ok := visited[key]; ok {
			return nil
		}
		visited[key] = struct{}{}

		direct := children[key]
		nodes := make([]EmployeeRecord, 0, len(direct))
		for _, rec := range direct {
			if _, ok := visited[emailKey(rec.Email)]; ok {
				continue
			}
			rec.Subordinates = build(rec.Email)
			nodes = append(nodes, rec)
		}
		return nodes
	}

	return build(managerEmail)
}

// Level は階層の深さごとの社員一覧です。直属部下が Level 1 です。
type Level struct {
	Depth     int
	Employees []EmployeeRecord
}

// Levels はツリーを深さごとにまとめます。各階層内の順序は前順走査の順序です。
func Levels(tree []EmployeeRecord) []Level {
	var levels []Level
	var walk func(nodes []EmployeeRecord, depth int)
	walk = func(nodes []EmployeeRecord, depth int) {
		if len(nodes) == 0 {
			return
		}
		if len(levels) < depth {
			levels = append(levels, Level{Depth: depth})
		}
		for _, n := range nodes {
			rec := n
			rec.Subordinates = nil
			levels[depth-1].Employees = append(levels[depth-1].Employees, rec)
			walk(n.Subordinates, depth+1)
		}
	}
	walk(tree, 1)
	return levels
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
