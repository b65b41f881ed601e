package rowstream

import (
	"testing"

	"github.com/rowgraph/rowgraph/row"
)

func TestGroupReaderContiguousGroups(t *testing.T) {
	rows := []row.Row{
		{"k": int64(1), "v": "a"},
		{"k": int64(1), "v": "b"},
		{"k": int64(2), "v": "c"},
	}
	reader := NewGroupReader(Of(rows), []string{"k"}, "test")
	defer reader.Close()

	var groups [][]row.Row
	for {
		_, group, err, ok := reader.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		collected, err := Collect(group)
		if err != nil {
			t.Fatalf("unexpected error draining group: %v", err)
		}
		groups = append(groups, collected)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0]) != 2 || len(groups[1]) != 1 {
		t.Fatalf("unexpected group sizes: %v, %v", len(groups[0]), len(groups[1]))
	}
}

func TestGroupReaderEmptyKeysIsOneGroup(t *testing.T) {
	rows := []row.Row{{"a": int64(1)}, {"a": int64(2)}}
	reader := NewGroupReader(Of(rows), nil, "test")
	defer reader.Close()

	_, group, err, ok := reader.Next()
	if err != nil || !ok {
		t.Fatalf("expected one group, err=%v ok=%v", err, ok)
	}
	collected, err := Collect(group)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(collected) != 2 {
		t.Fatalf("expected the whole input as one group, got %d rows", len(collected))
	}

	if _, _, _, ok := reader.Next(); ok {
		t.Fatal("expected only one group")
	}
}

func TestGroupReaderSkipsUndrainedGroup(t *testing.T) {
	rows := []row.Row{
		{"k": int64(1), "v": "a"},
		{"k": int64(1), "v": "b"},
		{"k": int64(2), "v": "c"},
	}
	reader := NewGroupReader(Of(rows), []string{"k"}, "test")
	defer reader.Close()

	_, _, err, ok := reader.Next() // don't drain this group at all
	if err != nil || !ok {
		t.Fatalf("expected first group, err=%v ok=%v", err, ok)
	}

	key, group, err, ok := reader.Next()
	if err != nil || !ok {
		t.Fatalf("expected second group, err=%v ok=%v", err, ok)
	}
	if key[0] != int64(2) {
		t.Fatalf("expected to skip to key 2, got %v", key)
	}
	collected, err := Collect(group)
	if err != nil || len(collected) != 1 {
		t.Fatalf("unexpected second group contents: %v, err=%v", collected, err)
	}
}
