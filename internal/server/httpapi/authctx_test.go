package httpapi

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
)

func TestUserIDRoundTrip(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	ctx := WithUserID(context.Background(), id)

	got, ok := UserIDFromCtx(ctx)
	if !ok || got != id {
		t.Fatalf("got %v ok=%v", got, ok)
	}
}

func TestUserIDMissing(t *testing.T) {
	if _, ok := UserIDFromCtx(context.Background()); ok {
		t.Fatal("empty context must carry no identity")
	}
}
