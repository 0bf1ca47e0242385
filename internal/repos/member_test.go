package repos_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/repos"
	"github.com/librisapp/library-backend/internal/testutil"
	"github.com/librisapp/library-backend/internal/types"
)

func TestMemberRepoIsEmailTaken(t *testing.T) {
	gdb := testutil.DB(t)
	repo := repos.NewMemberRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	member := testutil.SeedMember(t, gdb, "Dana Reader", "dana@example.com")

	taken, err := repo.IsEmailTaken(ctx, nil, "dana@example.com", 0)
	if err != nil {
		t.Fatalf("IsEmailTaken: %v", err)
	}
	if !taken {
		t.Fatal("existing email not reported taken")
	}

	taken, err = repo.IsEmailTaken(ctx, nil, "dana@example.com", member.ID)
	if err != nil {
		t.Fatalf("IsEmailTaken excluding self: %v", err)
	}
	if taken {
		t.Fatal("row collided with itself")
	}

	taken, err = repo.IsEmailTaken(ctx, nil, "other@example.com", 0)
	if err != nil {
		t.Fatalf("IsEmailTaken(free): %v", err)
	}
	if taken {
		t.Fatal("free email reported taken")
	}
}

func TestMemberRepoUniqueEmailIndex(t *testing.T) {
	gdb := testutil.DB(t)
	repo := repos.NewMemberRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedMember(t, gdb, "First", "shared@example.com")
	err := repo.Create(ctx, nil, &types.Member{Name: "Second", Email: "shared@example.com"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate create error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestMemberRepoDelete(t *testing.T) {
	gdb := testutil.DB(t)
	repo := repos.NewMemberRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	member := testutil.SeedMember(t, gdb, "Gone Soon", "gone@example.com")
	deleted, err := repo.Delete(ctx, nil, member.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("Delete reported no rows affected")
	}

	deleted, err = repo.Delete(ctx, nil, member.ID)
	if err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if deleted {
		t.Fatal("second delete reported rows affected")
	}
}
