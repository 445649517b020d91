package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/internal/core/domain"
)

func TestDeclPath(t *testing.T) {
	assert.Equal(t, "example.com/shapes::geom::Point", domain.DeclPath("example.com/shapes", "geom", "Point"))
	assert.Equal(t, "example.com/shapes::.::Point", domain.DeclPath("example.com/shapes", "", "Point"))
}

func TestOwnerOf(t *testing.T) {
	owner, err := domain.OwnerOf("example.com/shapes::geom::Point")
	require.NoError(t, err)
	assert.Equal(t, "example.com/shapes", owner)

	for _, bad := range []string{"Point", "::geom::Point", ""} {
		_, err := domain.OwnerOf(bad)
		assert.ErrorIs(t, err, domain.ErrMalformedDeclPath, bad)
	}
}

func TestDeriveTypeTag(t *testing.T) {
	table := domain.OkTable([]domain.StateEntry{
		{Name: "example.com/shapes", Tag: 7},
		{Name: "example.com/other", Tag: 9},
	})
	decl := domain.DeclPath("example.com/shapes", "geom", "Point")
	structural := domain.StructuralHash("type Point struct {\n\tX int\n\tY int\n}")
	toolchain := "target=linux/amd64;"

	tag, err := domain.DeriveTypeTag(table, decl, structural, toolchain)
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		again, err := domain.DeriveTypeTag(table, decl, structural, toolchain)
		require.NoError(t, err)
		assert.Equal(t, tag, again)
	})

	t.Run("state sensitive", func(t *testing.T) {
		moved := domain.OkTable([]domain.StateEntry{{Name: "example.com/shapes", Tag: 8}})
		other, err := domain.DeriveTypeTag(moved, decl, structural, toolchain)
		require.NoError(t, err)
		assert.NotEqual(t, tag, other)
	})

	t.Run("field order sensitive", func(t *testing.T) {
		swapped := domain.StructuralHash("type Point struct {\n\tY int\n\tX int\n}")
		other, err := domain.DeriveTypeTag(table, decl, swapped, toolchain)
		require.NoError(t, err)
		assert.NotEqual(t, tag, other)
	})

	t.Run("toolchain sensitive", func(t *testing.T) {
		other, err := domain.DeriveTypeTag(table, decl, structural, "target=linux/arm64;")
		require.NoError(t, err)
		assert.NotEqual(t, tag, other)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := domain.DeriveTypeTag(table, domain.DeclPath("example.com/nobody", ".", "T"), structural, toolchain)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("poisoned table", func(t *testing.T) {
		_, err := domain.DeriveTypeTag(domain.ErrTable("no go.sum"), decl, structural, toolchain)
		assert.ErrorIs(t, err, domain.ErrResolution)
	})
}

func TestTypeTag_String(t *testing.T) {
	assert.Equal(t, "0x000000000000002a", domain.TypeTag(42).String())
}

func TestToolchain_Fingerprint(t *testing.T) {
	a := domain.Toolchain{Target: "linux/amd64", Flags: []string{"CGO_ENABLED=1", "-trimpath"}}
	b := domain.Toolchain{Target: "linux/amd64", Flags: []string{"-trimpath", "CGO_ENABLED=1"}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := a
	c.OptLevel = "-N -l"
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	assert.Equal(t,
		"target=linux/amd64;host=;opt=;flags=-trimpath CGO_ENABLED=1;go=;",
		a.Fingerprint())
}
