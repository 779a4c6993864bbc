package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func names(records []EmployeeRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func aliceTree() []EmployeeRecord {
	return []EmployeeRecord{
		{
			ID: 1, EmployeeID: 100, Name: "Alice", Email: "alice@example.com",
			Subordinates: []EmployeeRecord{
				{ID: 2, EmployeeID: 200, Name: "Bob", Email: "bob@example.com", ManagerName: "Alice", ManagerEmail: "alice@example.com"},
				{
					ID: 3, EmployeeID: 300, Name: "Carol", Email: "carol@example.com", ManagerName: "Alice", ManagerEmail: "alice@example.com",
					Subordinates: []EmployeeRecord{
						{ID: 4, EmployeeID: 400, Name: "Dave", Email: "dave@example.com", ManagerName: "Carol", ManagerEmail: "carol@example.com"},
					},
				},
			},
		},
	}
}

func TestFlatten_PreOrder(t *testing.T) {
	t.Parallel()

	tree := aliceTree()
	flat := Flatten(tree)

	require.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, names(flat))
	require.Len(t, flat, Count(tree))
	for _, rec := range flat {
		require.Empty(t, rec.Subordinates)
	}
}

func TestFlatten_EachNodeOnce(t *testing.T) {
	t.Parallel()

	tree := []EmployeeRecord{
		{ID: 1, Subordinates: []EmployeeRecord{{ID: 2}, {ID: 3, Subordinates: []EmployeeRecord{}}}},
		{ID: 4, Subordinates: nil},
		{ID: 5, Subordinates: []EmployeeRecord{{ID: 6, Subordinates: []EmployeeRecord{{ID: 7}}}}},
	}

	flat := Flatten(tree)
	require.Len(t, flat, 7)

	seen := make(map[int64]int)
	for _, rec := range flat {
		seen[rec.ID]++
	}
	for id := int64(1); id <= 7; id++ {
		require.Equal(t, 1, seen[id], "id %d", id)
	}
}

func TestFlatten_Idempotent(t *testing.T) {
	t.Parallel()

	once := Flatten(aliceTree())
	twice := Flatten(once)
	require.Equal(t, once, twice)
}

func TestFlatten_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tree := aliceTree()
	_ = Flatten(tree)
	require.Len(t, tree[0].Subordinates, 2)
	require.Len(t, tree[0].Subordinates[1].Subordinates, 1)
}

func TestFlatten_Empty(t *testing.T) {
	t.Parallel()

	require.Empty(t, Flatten(nil))
	require.Zero(t, Count(nil))
}

func TestBuildTree(t *testing.T) {
	t.Parallel()

	records := []EmployeeRecord{
		{ID: 2, Name: "Bob", Email: "bob@example.com", ManagerEmail: "ALICE@example.com"},
		{ID: 4, Name: "Dave", Email: "dave@example.com", ManagerEmail: "carol@example.com"},
		{ID: 3, Name: "Carol", Email: "carol@example.com", ManagerEmail: "alice@example.com"},
		{ID: 5, Name: "Erin", Email: "erin@example.com", ManagerEmail: "someone-else@example.com"},
	}

	tree := BuildTree(records, "alice@example.com")

	require.Equal(t, []string{"Bob", "Carol"}, names(tree))
	require.Empty(t, tree[0].Subordinates)
	require.Equal(t, []string{"Dave"}, names(tree[1].Subordinates))
	require.Equal(t, []string{"Bob", "Carol", "Dave"}, names(Flatten(tree)))
}

func TestBuildTree_StopsOnCycles(t *testing.T) {
	t.Parallel()

	records := []EmployeeRecord{
		{ID: 1, Name: "Alice", Email: "alice@example.com", ManagerEmail: "bob@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com", ManagerEmail: "alice@example.com"},
		{ID: 3, Name: "Self", Email: "self@example.com", ManagerEmail: "self@example.com"},
	}

	tree := BuildTree(records, "alice@example.com")
	require.Equal(t, []string{"Bob"}, names(Flatten(tree)))

	require.Empty(t, BuildTree(records, "self@example.com"))
}

func TestLevels(t *testing.T) {
	t.Parallel()

	levels := Levels(aliceTree()[0].Subordinates)

	require.Len(t, levels, 2)
	require.Equal(t, 1, levels[0].Depth)
	require.Equal(t, []string{"Bob", "Carol"}, names(levels[0].Employees))
	require.Equal(t, 2, levels[1].Depth)
	require.Equal(t, []string{"Dave"}, names(levels[1].Employees))

	require.Empty(t, Levels(nil))
}
