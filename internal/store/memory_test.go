package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/JonMunkholm/searchtable/internal/core"
)

func rec(id int64, name string) *core.Record {
	return &core.Record{ID: id, Name: name, UpdatedAt: core.Date(2024, 1, 1)}
}

func TestMemory_SnapshotOrderedByID(t *testing.T) {
	m := NewMemory([]*core.Record{rec(3, "c"), rec(1, "a"), rec(2, "b")})

	snap := m.Snapshot()
	for i, want := range []int64{1, 2, 3} {
		if snap[i].ID != want {
			t.Errorf("Snapshot()[%d].ID = %d, want %d", i, snap[i].ID, want)
		}
	}
	if m.MaxID() != 3 {
		t.Errorf("MaxID() = %d, want 3", m.MaxID())
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestMemory_ApplyPublishesNewSnapshot(t *testing.T) {
	m := NewMemory([]*core.Record{rec(1, "a"), rec(2, "b")})
	before := m.Snapshot()

	err := m.Apply(func(tx *Tx) error {
		if _, ok := tx.Delete(1); !ok {
			t.Error("Delete(1) should find the record")
		}
		return tx.Insert(rec(tx.MaxID()+1, "c"))
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(before) != 2 || before[0].ID != 1 {
		t.Errorf("old snapshot changed: %d records, first %d", len(before), before[0].ID)
	}

	after := m.Snapshot()
	if len(after) != 2 || after[0].ID != 2 || after[1].ID != 3 {
		t.Errorf("new snapshot IDs wrong: %v", after)
	}
	if _, ok := m.Get(1); ok {
		t.Error("Get(1) should miss after delete")
	}
}

func TestMemory_ApplyErrorRollsBack(t *testing.T) {
	m := NewMemory([]*core.Record{rec(1, "a"), rec(2, "b")})
	boom := errors.New("boom")

	err := m.Apply(func(tx *Tx) error {
		tx.Delete(1)
		tx.Delete(2)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Apply() error = %v, want boom", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d after failed Apply, want 2", m.Len())
	}
}

func TestTx_InsertDuplicate(t *testing.T) {
	m := NewMemory([]*core.Record{rec(1, "a")})

	err := m.Apply(func(tx *Tx) error {
		return tx.Insert(rec(1, "again"))
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Apply() error = %v, want ErrDuplicateID", err)
	}
}

func TestTx_InsertCopiesRecord(t *testing.T) {
	m := NewMemory(nil)
	r := rec(1, "a")

	if err := m.Apply(func(tx *Tx) error { return tx.Insert(r) }); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	r.Name = "changed"

	got, _ := m.Get(1)
	if got.Name != "a" {
		t.Errorf("stored Name = %q, want %q", got.Name, "a")
	}
}

func TestTx_MaxIDSurvivesDelete(t *testing.T) {
	m := NewMemory([]*core.Record{rec(1, "a"), rec(5, "e")})

	_ = m.Apply(func(tx *Tx) error {
		tx.Delete(5)
		if tx.MaxID() != 5 {
			t.Errorf("tx.MaxID() = %d after delete, want 5", tx.MaxID())
		}
		return nil
	})
}

func TestMemory_Replace(t *testing.T) {
	m := NewMemory([]*core.Record{rec(1, "a")})
	m.Replace([]*core.Record{rec(10, "x"), rec(11, "y")})

	if m.Len() != 2 || m.MaxID() != 11 {
		t.Errorf("after Replace Len = %d MaxID = %d, want 2, 11", m.Len(), m.MaxID())
	}
}

func TestMemory_ConcurrentReadersAndWriters(t *testing.T) {
	m := NewMemory(Seed(50, 1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap := m.Snapshot()
				for k := 1; k < len(snap); k++ {
					if snap[k-1].ID >= snap[k].ID {
						t.Error("snapshot not ordered")
						return
					}
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = m.Apply(func(tx *Tx) error {
					return tx.Insert(rec(tx.MaxID()+1, "new"))
				})
			}
		}()
	}
	wg.Wait()

	if m.Len() != 150 {
		t.Errorf("Len() = %d, want 150", m.Len())
	}
}

func TestMemory_ImplementsRecordSource(t *testing.T) {
	var _ core.RecordSource = (*Memory)(nil)
}
