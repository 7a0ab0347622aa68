package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mveldt/endgame/internal/game"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	g := game.New("cat")
	if err := st.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := st.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != g {
		t.Error("Get returned a different round instance")
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
