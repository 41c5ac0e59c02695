package chart

import (
	"sync"
	"testing"

	"github.com/matzehuels/apexkit/pkg/errors"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	factory := func() Definition { return salesChart{} }

	if err := r.Register("sales", factory); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := r.Register("sales", factory); !errors.Is(err, errors.ErrCodeDuplicate) {
		t.Errorf("duplicate Register() error = %v", err)
	}
	if err := r.Register("Bad Name", factory); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("invalid name error = %v", err)
	}
	if err := r.Register("empty", nil); !errors.Is(err, errors.ErrCodeInvalidDefinition) {
		t.Errorf("nil factory error = %v", err)
	}
	if err := r.Register("cost", factory); err != nil {
		t.Fatal(err)
	}

	def, err := r.Lookup("sales")
	if err != nil || def == nil {
		t.Fatalf("Lookup() = %v, %v", def, err)
	}
	if _, err := r.Lookup("missing"); !errors.Is(err, errors.ErrCodeChartNotFound) {
		t.Errorf("Lookup(missing) error = %v", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "cost" || names[1] != "sales" || r.Len() != 2 {
		t.Errorf("Names() = %v, Len() = %d", names, r.Len())
	}
}

func TestRegistryConcurrentLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("sales", func() Definition { return salesChart{} }); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Lookup("sales"); err != nil {
				t.Error(err)
			}
			_ = r.Names()
		}()
	}
	wg.Wait()
}
