package storage

import "testing"

func TestNewStoreKinds(t *testing.T) {
	for _, kind := range []string{"", KindMemory, KindSQLite, KindBadger} {
		store, err := NewStore(kind, "")
		if err != nil {
			t.Fatalf("new %q store: %v", kind, err)
		}
		if store == nil {
			t.Fatalf("expected non-nil %q store", kind)
		}
	}
	if DefaultStoreKind() != KindMemory {
		t.Fatalf("unexpected default store kind: %s", DefaultStoreKind())
	}
}

func TestNewStoreUnsupported(t *testing.T) {
	if _, err := NewStore("unknown", ""); err == nil {
		t.Fatal("expected unsupported store error")
	}
}

func TestCloseIfSupportedIgnoresMemoryStore(t *testing.T) {
	if err := CloseIfSupported(NewMemoryStore()); err != nil {
		t.Fatalf("close memory store: %v", err)
	}
}
